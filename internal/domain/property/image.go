package property

// Image belongs to exactly one property and is deleted with it.
type Image struct {
	id       uint
	url      string
	position int
}

func ReconstructImage(id uint, url string, position int) Image {
	return Image{id: id, url: url, position: position}
}

func (i Image) ID() uint {
	return i.id
}

func (i Image) URL() string {
	return i.url
}

func (i Image) Position() int {
	return i.position
}
