package script

import (
	"reflect"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func newLState(t *testing.T) *lua.LState {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	return L
}

func TestToGoScalars(t *testing.T) {
	tests := []struct {
		name string
		in   lua.LValue
		want any
	}{
		{"integer", lua.LNumber(5), int64(5)},
		{"negative integer", lua.LNumber(-3), int64(-3)},
		{"float", lua.LNumber(2.5), 2.5},
		{"string", lua.LString("go"), "go"},
		{"true", lua.LTrue, true},
		{"false", lua.LFalse, false},
		{"nil", lua.LNil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToGo(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToGo() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToGoArrayTable(t *testing.T) {
	L := newLState(t)
	tbl := L.NewTable()
	tbl.RawSetInt(1, lua.LString("a"))
	tbl.RawSetInt(2, lua.LNumber(2))
	tbl.RawSetInt(3, lua.LTrue)

	want := []any{"a", int64(2), true}
	if got := ToGo(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("ToGo() = %#v, want %#v", got, want)
	}
}

func TestToGoMapTable(t *testing.T) {
	L := newLState(t)
	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString("x"))
	tbl.RawSetString("count", lua.LNumber(3))

	want := map[string]any{"name": "x", "count": int64(3)}
	if got := ToGo(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("ToGo() = %#v, want %#v", got, want)
	}
}

func TestToGoSparseTableIsMap(t *testing.T) {
	L := newLState(t)
	tbl := L.NewTable()
	tbl.RawSetInt(1, lua.LString("a"))
	tbl.RawSetInt(3, lua.LString("c"))

	got, ok := ToGo(tbl).(map[string]any)
	if !ok {
		t.Fatalf("ToGo() = %#v, want a map for sparse keys", got)
	}
	if got["1"] != "a" || got["3"] != "c" {
		t.Errorf("ToGo() = %#v", got)
	}
}

func TestToGoNestedTables(t *testing.T) {
	L := newLState(t)
	inner := L.NewTable()
	inner.RawSetInt(1, lua.LNumber(1))
	inner.RawSetInt(2, lua.LNumber(2))
	outer := L.NewTable()
	outer.RawSetString("items", inner)

	want := map[string]any{"items": []any{int64(1), int64(2)}}
	if got := ToGo(outer); !reflect.DeepEqual(got, want) {
		t.Errorf("ToGo() = %#v, want %#v", got, want)
	}
}

func TestToGoCircularTable(t *testing.T) {
	L := newLState(t)
	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString("x"))
	tbl.RawSetString("self", tbl)

	got, ok := ToGo(tbl).(map[string]any)
	if !ok {
		t.Fatalf("ToGo() = %#v", got)
	}
	if got["name"] != "x" {
		t.Errorf("name = %v", got["name"])
	}
	if got["self"] != nil {
		t.Errorf("circular reference = %v, want nil", got["self"])
	}
}

func TestToGoFunctionIsNil(t *testing.T) {
	L := newLState(t)
	fn := L.NewFunction(func(*lua.LState) int { return 0 })
	if got := ToGo(fn); got != nil {
		t.Errorf("ToGo(function) = %#v, want nil", got)
	}
}

func TestToLuaScalars(t *testing.T) {
	L := newLState(t)

	tests := []struct {
		name string
		in   any
		want lua.LValue
	}{
		{"nil", nil, lua.LNil},
		{"bool", true, lua.LTrue},
		{"int", 7, lua.LNumber(7)},
		{"int64", int64(7), lua.LNumber(7)},
		{"float64", 1.25, lua.LNumber(1.25)},
		{"string", "go", lua.LString("go")},
		{"bytes", []byte("raw"), lua.LString("raw")},
		{"unsupported", struct{}{}, lua.LNil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLua(L, tt.in); got != tt.want {
				t.Errorf("ToLua() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToLuaSlice(t *testing.T) {
	L := newLState(t)
	tbl, ok := ToLua(L, []any{"a", 2, true}).(*lua.LTable)
	if !ok {
		t.Fatal("ToLua(slice) is not a table")
	}
	if tbl.Len() != 3 {
		t.Errorf("table length = %d, want 3", tbl.Len())
	}
	if tbl.RawGetInt(1) != lua.LString("a") || tbl.RawGetInt(2) != lua.LNumber(2) || tbl.RawGetInt(3) != lua.LTrue {
		t.Errorf("table contents wrong: %v %v %v",
			tbl.RawGetInt(1), tbl.RawGetInt(2), tbl.RawGetInt(3))
	}
}

func TestToLuaMap(t *testing.T) {
	L := newLState(t)
	tbl, ok := ToLua(L, map[string]any{"name": "x", "n": int64(3)}).(*lua.LTable)
	if !ok {
		t.Fatal("ToLua(map) is not a table")
	}
	if tbl.RawGetString("name") != lua.LString("x") {
		t.Errorf("name = %v", tbl.RawGetString("name"))
	}
	if tbl.RawGetString("n") != lua.LNumber(3) {
		t.Errorf("n = %v", tbl.RawGetString("n"))
	}
}

func TestRoundTrip(t *testing.T) {
	L := newLState(t)
	in := map[string]any{
		"name": "doc",
		"size": int64(12),
		"tags": []any{"a", "b"},
		"meta": map[string]any{"ok": true},
	}
	got := ToGo(ToLua(L, in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %#v, want %#v", got, in)
	}
}
