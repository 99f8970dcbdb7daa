package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file parses the four size tokens and the layout direction from markup attributes.

const (
	unitDp      = "dp"
	unitStar    = "*"
	unitContent = "content"
	unitFill    = "fill"
)

// String returns the markup token for a constraint, e.g. "120dp" or "2*".
func (c Constraint) String() string {
	switch c.Kind {
	case KindFixed:
		return strconv.Itoa(c.Value) + unitDp
	case KindContent:
		return unitContent
	case KindStar:
		return strconv.Itoa(c.Value) + unitStar
	case KindFill:
		return unitFill
	default:
		return fmt.Sprintf("constraint(%d)", int(c.Kind))
	}
}

// ParseConstraint parses a width/height attribute value.
// Accepted forms: "<n>dp", "<n>*", "*" (weight 1), "content", "fill".
func ParseConstraint(value string) (Constraint, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "":
		return Constraint{}, fmt.Errorf("尺寸为空")
	case unitContent:
		return Wrap(), nil
	case unitFill:
		return Stretch(), nil
	case unitStar:
		return Weight(1), nil
	}
	for _, suf := range []struct {
		s    string
		kind ConstraintKind
	}{{unitDp, KindFixed}, {unitStar, KindStar}} {
		if !strings.HasSuffix(v, suf.s) {
			continue
		}
		num := strings.TrimSuffix(v, suf.s)
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 || strings.HasPrefix(num, "+") {
			return Constraint{}, fmt.Errorf("无法识别的尺寸 %q", value)
		}
		if suf.kind == KindStar && n == 0 {
			return Constraint{}, fmt.Errorf("权重必须为正整数: %q", value)
		}
		return Constraint{Kind: suf.kind, Value: n}, nil
	}
	return Constraint{}, fmt.Errorf("无法识别的尺寸 %q", value)
}

// ParseDirection parses the layout-direction attribute; empty means row.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "row":
		return Row, nil
	case "column":
		return Column, nil
	default:
		return Row, fmt.Errorf("无法识别的 layout-direction %q", value)
	}
}
