package content

import (
	"os"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// SourceDoc is a read and front-matter-validated content file, ready for
// metadata derivation.
type SourceDoc struct {
	File   SourceFile
	Matter *frontmatter.Matter
	Body   []byte
}

// ReadSource loads a discovered file and validates its front matter. Any
// failure is fatal and carries the source path.
func ReadSource(file SourceFile) (*SourceDoc, error) {
	raw, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, berrors.ReadFailed(file.RelPath, err)
	}

	fmRaw, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, berrors.FrontMatterInvalid(file.RelPath, "", err.Error())
	}

	matter, err := frontmatter.Decode(file.RelPath, fmRaw)
	if err != nil {
		return nil, err
	}

	return &SourceDoc{File: file, Matter: matter, Body: body}, nil
}
