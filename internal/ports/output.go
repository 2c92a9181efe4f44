package ports

import "whlgen/internal/types"

type OutputPort interface {
	WriteManifest(directory string, files []string) error
	WriteBuildFile(directory string, decl types.BuildDeclaration) error
}
