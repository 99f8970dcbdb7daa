package layout

import "testing"

// TestParseConstraint 覆盖四种单位及非法写法。
func TestParseConstraint(t *testing.T) {
	cases := map[string]Constraint{
		"120dp":   Dp(120),
		"0dp":     Dp(0),
		" 3* ":    Weight(3),
		"*":       Weight(1),
		"content": Wrap(),
		"FILL":    Stretch(),
	}
	for in, want := range cases {
		got, err := ParseConstraint(in)
		if err != nil {
			t.Fatalf("%q 解析失败: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q 解析错误: got=%v want=%v", in, got, want)
		}
	}
	for _, bad := range []string{"", "12", "12px", "-3dp", "0*", "dp", "1.5dp", "+2*", "auto"} {
		if _, err := ParseConstraint(bad); err == nil {
			t.Fatalf("%q 应解析失败", bad)
		}
	}
}

// TestConstraintStringRoundTrip 验证 String 输出可以被重新解析。
func TestConstraintStringRoundTrip(t *testing.T) {
	for _, c := range []Constraint{Dp(7), Weight(2), Wrap(), Stretch()} {
		got, err := ParseConstraint(c.String())
		if err != nil || got != c {
			t.Fatalf("%v 往返失败: got=%v err=%v", c, got, err)
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection(""); err != nil || d != Row {
		t.Fatalf("缺省方向应为 row: %v %v", d, err)
	}
	if d, err := ParseDirection("column"); err != nil || d != Column {
		t.Fatalf("column 解析错误: %v %v", d, err)
	}
	if _, err := ParseDirection("diagonal"); err == nil {
		t.Fatalf("非法方向应报错")
	}
}
