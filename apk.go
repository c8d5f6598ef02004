package arsc

import (
	"archive/zip"
	"fmt"
)

// resource table member inside an APK archive
const arscName = "resources.arsc"

// DecodeApk opens an APK (a zip archive) and decodes the resource table it
// contains. Convenience wrapper around Decode; the archive handling itself
// is not part of the decoding contract.
func (d *Decoder) DecodeApk(path string) (*Table, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("arsc: opening apk %s: %w", path, err)
	}
	defer rc.Close()

	for _, f := range rc.File {
		if f.Name != arscName {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("arsc: opening %s in %s: %w", arscName, path, err)
		}
		defer r.Close()
		return d.Decode(r)
	}
	return nil, fmt.Errorf("arsc: no %s in %s", arscName, path)
}
