package model

import "fmt"

// LoadMode selects how a load treats an existing destination table.
type LoadMode string

const (
	// ModeReplace drops the destination and recreates it from the loaded rows.
	ModeReplace LoadMode = "replace"
	// ModeAppend inserts into the destination, creating it when absent.
	ModeAppend LoadMode = "append"
)

func ParseLoadMode(s string) (LoadMode, error) {
	switch LoadMode(s) {
	case ModeReplace, ModeAppend:
		return LoadMode(s), nil
	case "":
		return ModeAppend, nil
	default:
		return "", fmt.Errorf("unknown load mode %q (want replace or append)", s)
	}
}
