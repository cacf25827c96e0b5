package webserver

import "path/filepath"

const (
	publicDir     = "Public"
	imagesDir     = "images"
	scriptsDir    = "scripts"
	customHTMLDir = "custom_html"
)

// Mount serves files under Dir for requests below Prefix.
type Mount struct {
	Prefix string
	Dir    string
}

// MountTable lists the static mounts in precedence order. Public and
// custom_html share the root prefix, so a file present in both is served
// from Public.
func MountTable(root string) []Mount {
	return []Mount{
		{Prefix: "/", Dir: filepath.Join(root, publicDir)},
		{Prefix: "/images", Dir: filepath.Join(root, imagesDir)},
		{Prefix: "/scripts", Dir: filepath.Join(root, scriptsDir)},
		{Prefix: "/", Dir: filepath.Join(root, customHTMLDir)},
	}
}

// CandidatePaths returns the absolute locations searched for the homepage,
// in order, resolved against the working directory.
func CandidatePaths(root, homepageFile string) ([]string, error) {
	rel := []string{
		filepath.Join(root, homepageFile),
		filepath.Join(root, publicDir, homepageFile),
		filepath.Join(root, customHTMLDir, homepageFile),
		homepageFile,
	}
	paths := make([]string, 0, len(rel))
	for _, p := range rel {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		paths = append(paths, abs)
	}
	return paths, nil
}
