package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseBoolParam retrieves a boolean value from the provided URL query parameters.
// A missing key yields false. Invalid values yield false and a field error.
func ParseBoolParam(params url.Values, key string, fieldErrors map[string][]string) (bool, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := strings.TrimSpace(params.Get(key))
	if val == "" {
		return false, fieldErrors
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return false, fieldErrors
	}
	return b, fieldErrors
}

// ParseListParam collects every value of key. A single parameter is split on
// commas; repeated parameters are taken as given, so names that contain a
// comma must be sent that way (an extra empty parameter is enough for a
// single name). Blank items are skipped; items that fail
// ValidateFilterValue become field errors.
func ParseListParam(params url.Values, key string, fieldErrors map[string][]string) ([]string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	items := params[key]
	if len(items) == 1 {
		items = strings.Split(items[0], ",")
	}

	var out []string
	for _, item := range items {
		value, err := CleanFilterValue(item)
		if err != nil {
			fieldErrors[key] = append(fieldErrors[key], err.Error())
			continue
		}
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out, fieldErrors
}
