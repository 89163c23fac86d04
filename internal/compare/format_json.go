package compare

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/kpgo/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	return jf.marshal(compSet)
}

// FormatClaimTiming generates JSON output for a claim timing comparison
func (jf *JSONFormatter) FormatClaimTiming(cmp *domain.ClaimComparison) (string, error) {
	return jf.marshal(cmp)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
