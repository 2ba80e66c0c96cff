package models

// ImageOptions are the transformations applied by the image CDN. Zero values are omitted.
type ImageOptions struct {
	Width   int
	Height  int
	Blur    int
	Quality int
	Format  string
	Fit     string
}

// ImageDimensions are the original pixel dimensions encoded in an asset reference.
type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageAsset is a parsed "image-<id>-<width>x<height>-<format>" reference.
type ImageAsset struct {
	ID         string
	Dimensions ImageDimensions
	Format     string
}
