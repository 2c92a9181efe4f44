package types

type MetadataFormat string

const (
	MetadataFormatStructured MetadataFormat = "metadata.json"
	MetadataFormatText       MetadataFormat = "METADATA"
)
