package project

import (
	"encoding/json"

	"github.com/archboard/archboard/pkg/document"
	"github.com/archboard/archboard/pkg/types"
)

// encodeGeneric converts a typed stored document into the generic form the
// deserializer operates on. Going through JSON keeps one decode path for
// stored designs and designs arriving over the wire.
func encodeGeneric(doc *types.Document) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return document.Parse(data)
}
