package xdgmenu

import (
	"slices"
	"strings"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

// splitList splits a sep separated value, dropping empty fields.
// A trailing separator is therefore tolerated.
func splitList(value, sep string) []string {
	var fields []string
	for _, field := range strings.Split(value, sep) {
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// appendUnique appends items not already in list, keeping first positions.
func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}
