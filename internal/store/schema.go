package store

import (
	_ "embed"

	"github.com/wesleyorama2/harstat/pkg/jsonschema"
)

//go:embed result.schema.json
var resultSchema string

var resultValidator = jsonschema.MustCompile("result.schema.json", resultSchema)
