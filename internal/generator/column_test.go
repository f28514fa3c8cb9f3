package generator

import (
	"strings"
	"testing"
	"time"
)

func TestNonNullableNeverNil(t *testing.T) {
	f := NewFaker(1)
	col := &Column{Name: "amount", Kind: KindInteger, Nullable: false}

	for i := 0; i < 1000; i++ {
		if col.Generate(f) == nil {
			t.Fatalf("non-nullable column generated nil on iteration %d", i)
		}
	}
}

func TestNullableRate(t *testing.T) {
	f := NewFaker(42)
	col := &Column{Name: "note", Kind: KindString, Nullable: true, MaxLength: 20}

	const samples = 10000
	nulls := 0
	for i := 0; i < samples; i++ {
		if col.Generate(f) == nil {
			nulls++
		}
	}

	rate := float64(nulls) / samples
	if rate < 0.07 || rate > 0.13 {
		t.Errorf("null rate %.3f outside tolerance band around %.2f", rate, NullRate)
	}
}

func TestSkipGenerationAlwaysNil(t *testing.T) {
	f := NewFaker(1)
	col := &Column{Name: "id", Kind: KindInteger, Nullable: false, SkipGeneration: true}

	for i := 0; i < 100; i++ {
		if v := col.Generate(f); v != nil {
			t.Fatalf("skip-generation column generated %v, want nil", v)
		}
	}
}

func TestCustomGeneratorTrusted(t *testing.T) {
	f := NewFaker(1)
	col := &Column{
		Name:      "gender",
		Kind:      KindString,
		Generator: func() any { return "M" },
	}

	for i := 0; i < 50; i++ {
		if v := col.Generate(f); v != "M" {
			t.Fatalf("custom generator result not returned verbatim, got %v", v)
		}
	}
}

func TestIntegerBounds(t *testing.T) {
	f := NewFaker(7)
	col := &Column{Name: "salary", Kind: KindInteger, MinValue: 30000, MaxValue: 150000}

	for i := 0; i < 1000; i++ {
		v, ok := col.Generate(f).(int64)
		if !ok {
			t.Fatalf("expected int64, got %T", col.Generate(f))
		}
		if v < 30000 || v > 150000 {
			t.Fatalf("value %d outside [30000, 150000]", v)
		}
	}
}

func TestShortStringIsUppercaseCode(t *testing.T) {
	f := NewFaker(3)
	col := &Column{Name: "gender", Kind: KindString, MaxLength: 2}

	for i := 0; i < 100; i++ {
		v := col.Generate(f).(string)
		if len(v) != 2 {
			t.Fatalf("expected 2-char code, got %q", v)
		}
		if v != strings.ToUpper(v) {
			t.Fatalf("expected uppercase code, got %q", v)
		}
	}
}

func TestLongStringRespectsBound(t *testing.T) {
	f := NewFaker(3)
	col := &Column{Name: "description", Kind: KindString, MaxLength: 40}

	for i := 0; i < 100; i++ {
		v := col.Generate(f).(string)
		if len(v) > 40 {
			t.Fatalf("string %q exceeds max length 40", v)
		}
	}
}

func TestBooleanRatio(t *testing.T) {
	f := NewFaker(11)
	col := &Column{Name: "active", Kind: KindBoolean, TrueRatio: 0.9}

	trues := 0
	const samples = 10000
	for i := 0; i < samples; i++ {
		if col.Generate(f).(bool) {
			trues++
		}
	}
	rate := float64(trues) / samples
	if rate < 0.85 || rate > 0.95 {
		t.Errorf("true rate %.3f outside tolerance band around 0.9", rate)
	}
}

func TestDateTimeWindow(t *testing.T) {
	f := NewFaker(5)
	col := &Column{Name: "hired_at", Kind: KindDateTime, YearsBack: 10}

	now := time.Now()
	lower := now.AddDate(-11, 0, 0)
	for i := 0; i < 200; i++ {
		v := col.Generate(f).(time.Time)
		if v.After(now) || v.Before(lower) {
			t.Fatalf("timestamp %v outside configured window", v)
		}
	}
}

func TestEmailShape(t *testing.T) {
	f := NewFaker(9)
	col := &Column{Name: "email", Kind: KindEmail}

	v := col.Generate(f).(string)
	if !strings.Contains(v, "@") {
		t.Errorf("email %q missing @", v)
	}
}

func TestNameVariants(t *testing.T) {
	f := NewFaker(13)

	first := (&Column{Name: "first_name", Kind: KindName, NameVariant: FirstName}).Generate(f).(string)
	if strings.Contains(first, " ") {
		t.Errorf("first name %q should be a single word", first)
	}

	full := (&Column{Name: "name", Kind: KindName, NameVariant: FullName}).Generate(f).(string)
	if !strings.Contains(full, " ") {
		t.Errorf("full name %q should contain first and last", full)
	}
}

func TestChoiceColumn(t *testing.T) {
	f := NewFaker(17)
	col := &Column{Name: "status", Kind: KindChoice, Choices: []string{"active", "inactive", "banned"}}

	allowed := map[string]bool{"active": true, "inactive": true, "banned": true}
	for i := 0; i < 100; i++ {
		if v := col.Generate(f).(string); !allowed[v] {
			t.Fatalf("choice %q not in configured set", v)
		}
	}
}
