package conv

import "testing"

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{1.5, 1.5, true},
		{float32(2), 2, true},
		{int(3), 3, true},
		{int64(4), 4, true},
		{int32(5), 5, true},
		{true, 1, true},
		{false, 0, true},
		{"nope", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ToFloat64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSliceAnyToInt(t *testing.T) {
	got := SliceAnyToInt([]any{1, 2.0, "x", int64(3)})
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("SliceAnyToInt() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SliceAnyToInt()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got := SliceAnyToInt("not a slice"); got != nil {
		t.Errorf("SliceAnyToInt(non-slice) = %v, want nil", got)
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"name": "risk", "keep": 20}

	if got := ConfigGet(m, "name", "default"); got != "risk" {
		t.Errorf("ConfigGet(name) = %q, want risk", got)
	}
	if got := ConfigGet(m, "missing", "default"); got != "default" {
		t.Errorf("ConfigGet(missing) = %q, want default", got)
	}
	// 类型不符回落默认值
	if got := ConfigGet(m, "keep", "default"); got != "default" {
		t.Errorf("ConfigGet(wrong type) = %q, want default", got)
	}
	if got := ConfigGet[string](nil, "k", "d"); got != "d" {
		t.Errorf("ConfigGet(nil map) = %q, want d", got)
	}
}

func TestConfigGetInt(t *testing.T) {
	// YAML 解析常给 int，JSON 给 float64
	m := map[string]any{"a": 7, "b": 8.0, "c": "x"}

	if got := ConfigGetInt(m, "a", 0); got != 7 {
		t.Errorf("ConfigGetInt(a) = %d, want 7", got)
	}
	if got := ConfigGetInt(m, "b", 0); got != 8 {
		t.Errorf("ConfigGetInt(b) = %d, want 8", got)
	}
	if got := ConfigGetInt(m, "c", 9); got != 9 {
		t.Errorf("ConfigGetInt(c) = %d, want fallback 9", got)
	}
}

func TestConfigGetFloat(t *testing.T) {
	m := map[string]any{"frac": 0.2, "whole": 1}

	if got := ConfigGetFloat(m, "frac", 0); got != 0.2 {
		t.Errorf("ConfigGetFloat(frac) = %v, want 0.2", got)
	}
	if got := ConfigGetFloat(m, "whole", 0); got != 1 {
		t.Errorf("ConfigGetFloat(whole) = %v, want 1", got)
	}
	if got := ConfigGetFloat(m, "missing", 0.5); got != 0.5 {
		t.Errorf("ConfigGetFloat(missing) = %v, want 0.5", got)
	}
}
