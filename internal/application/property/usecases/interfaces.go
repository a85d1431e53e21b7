package usecases

import (
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/infrastructure/storage"
)

// ImageStore persists uploaded listing images and returns their public URLs.
type ImageStore interface {
	SaveImages(uploads []storage.Upload) ([]string, error)
	// Remove is best effort.
	Remove(urls []string)
}

type ReviewNotifier interface {
	SendReviewOutcomeEmail(to, name string, n email.ReviewNotice) error
}

type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}
