package usecases

import (
	stderrors "errors"

	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/errors"
)

// DetailsInput is the raw listing content of a create request.
type DetailsInput struct {
	Title           string
	Location        string
	Description     string
	Price           int64
	Category        string
	PropertyType    string
	TransactionType string
	Bedrooms        int
	Bathrooms       int
	Size            int
	Furnishing      string
}

func (in DetailsInput) toDetails() (property.Details, error) {
	d := property.Details{
		Title:        in.Title,
		Location:     in.Location,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		PropertyType: in.PropertyType,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Size:         in.Size,
	}
	if in.TransactionType != "" {
		t, err := vo.ParseTransactionType(in.TransactionType)
		if err != nil {
			return d, errors.NewValidationError(err.Error())
		}
		d.TransactionType = t
	}
	if in.Furnishing != "" {
		f, err := vo.ParseFurnishing(in.Furnishing)
		if err != nil {
			return d, errors.NewValidationError(err.Error())
		}
		d.Furnishing = f
	}
	return d, nil
}

// PatchInput carries optional content changes; nil fields are untouched.
type PatchInput struct {
	Title           *string
	Location        *string
	Description     *string
	Price           *int64
	Category        *string
	PropertyType    *string
	TransactionType *string
	Bedrooms        *int
	Bathrooms       *int
	Size            *int
	Furnishing      *string
}

func (in PatchInput) toPatch() (property.Patch, error) {
	p := property.Patch{
		Title:        in.Title,
		Location:     in.Location,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		PropertyType: in.PropertyType,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Size:         in.Size,
	}
	if in.TransactionType != nil {
		t, err := vo.ParseTransactionType(*in.TransactionType)
		if err != nil {
			return p, errors.NewValidationError(err.Error())
		}
		p.TransactionType = &t
	}
	if in.Furnishing != nil {
		f, err := vo.ParseFurnishing(*in.Furnishing)
		if err != nil {
			return p, errors.NewValidationError(err.Error())
		}
		p.Furnishing = &f
	}
	return p, nil
}

func parseStatus(raw *string) (*vo.Status, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	s, err := vo.ParseStatus(*raw)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &s, nil
}

// storeImages saves uploads and maps storage rejections to validation errors.
func storeImages(store ImageStore, uploads []storage.Upload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	urls, err := store.SaveImages(uploads)
	if err != nil {
		switch {
		case stderrors.Is(err, storage.ErrTooManyFiles),
			stderrors.Is(err, storage.ErrFileTooLarge),
			stderrors.Is(err, storage.ErrEmptyFile),
			stderrors.Is(err, storage.ErrUnsupportedType):
			return nil, errors.NewValidationError("invalid image upload", err.Error())
		}
		return nil, err
	}
	return urls, nil
}

func imageURLs(p *property.Property) []string {
	images := p.Images()
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL())
	}
	return urls
}
