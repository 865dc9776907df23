package domain

// Image описывает результат поиска изображения у внешнего провайдера.
type Image struct {
	ID           string
	ThumbnailURL string
	FullURL      string
}

func NewImage(id, thumbnailURL, fullURL string) *Image {
	return &Image{
		ID:           id,
		ThumbnailURL: thumbnailURL,
		FullURL:      fullURL,
	}
}

// StoredImage описывает зеркалированное изображение, которое хранится в S3.
type StoredImage struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Data        []byte
	ContentType string
}

func NewStoredImage(id, bucket, objectKey string, data []byte, contentType string) *StoredImage {
	return &StoredImage{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		ContentType: contentType,
	}
}
