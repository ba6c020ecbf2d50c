package postlib

// Per-category upload limits of the remote platform. Size limits are
// inclusive upper bounds.
const (
	imageTypeMaxSize      = 5 * MB
	largeImageTypeMaxSize = 15 * MB
	videoTypeMaxSize      = 512 * MB
)

type mediaCategory struct {
	name           string
	types          []string
	maxSize        int64
	maxAttachments int
}

var mediaCategories = []mediaCategory{
	{
		name:           "image",
		types:          []string{"image/jpeg", "image/png", "image/webp"},
		maxSize:        imageTypeMaxSize,
		maxAttachments: 3,
	},
	{
		name:           "animated image",
		types:          []string{"image/gif"},
		maxSize:        largeImageTypeMaxSize,
		maxAttachments: 1,
	},
	{
		name:           "video",
		types:          []string{"video/mp4", "video/quicktime"},
		maxSize:        videoTypeMaxSize,
		maxAttachments: 1,
	},
}

// CheckCompat validates a resolved file against the per-category size
// limits before an upload is attempted and returns the maximum number of
// files of that category attachable to a single post.
//
// Unrecognized MIME types pass through permissively with a limit of 1;
// the remote performs its own validation for those.
func CheckCompat(info *FileInfo) (maxAttachments int, err error) {
	for _, cat := range mediaCategories {
		for _, t := range cat.types {
			if info.MimeType != t {
				continue
			}
			if info.Size > cat.maxSize {
				return 0, &IncompatibleMediaError{
					Category: cat.name,
					Limit:    cat.maxSize,
				}
			}
			return cat.maxAttachments, nil
		}
	}
	return 1, nil
}
