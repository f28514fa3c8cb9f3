package generator

// ColumnKind enumerates the semantic value types a column can generate.
type ColumnKind int

const (
	KindInteger ColumnKind = iota
	KindFloat
	KindString
	KindText
	KindDateTime
	KindBoolean
	KindEmail
	KindName
	KindPhone
	KindUUID
	KindChoice
	KindReference
)

func (k ColumnKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindDateTime:
		return "datetime"
	case KindBoolean:
		return "boolean"
	case KindEmail:
		return "email"
	case KindName:
		return "name"
	case KindPhone:
		return "phone"
	case KindUUID:
		return "uuid"
	case KindChoice:
		return "choice"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// NameVariant selects which part of a person's name a KindName column yields.
type NameVariant int

const (
	FullName NameVariant = iota
	FirstName
	LastName
)

// NullRate is the probability that a nullable column generates NULL. It is
// evaluated before custom generators so the null rate is uniform across
// column kinds.
const NullRate = 0.1

// Column is a single named generation unit of a table model.
type Column struct {
	Name     string
	Kind     ColumnKind
	Nullable bool
	Unique   bool

	// SkipGeneration marks database-assigned columns (SERIAL, AUTO_INCREMENT)
	// that must never appear in an insert payload.
	SkipGeneration bool

	MinValue    int64
	MaxValue    int64
	MaxLength   int
	NameVariant NameVariant
	TrueRatio   float64
	YearsBack   int
	Choices     []string

	// Generator overrides the kind's default. Its result is trusted verbatim.
	Generator func() any
}

// shortCodeLimit is the string length at or below which String columns yield
// uppercase alphabetic codes instead of prose.
const shortCodeLimit = 4

// Generate produces one value for the column: the skip gate first, then the
// nullability trial, then the custom generator, then the kind default.
func (c *Column) Generate(f *Faker) any {
	if c.SkipGeneration {
		return nil
	}
	if c.Nullable && f.rand.Float64() < NullRate {
		return nil
	}
	if c.Generator != nil {
		return c.Generator()
	}
	return c.defaultValue(f)
}

func (c *Column) defaultValue(f *Faker) any {
	switch c.Kind {
	case KindInteger, KindReference:
		min, max := c.MinValue, c.MaxValue
		if min == 0 && max == 0 {
			min, max = 1, 1000
		}
		return f.IntBetween(min, max)
	case KindFloat:
		max := float64(c.MaxValue)
		if max == 0 {
			max = 10000
		}
		return f.Float(max)
	case KindString:
		length := c.MaxLength
		if length <= 0 {
			length = 50
		}
		if length <= shortCodeLimit {
			return f.Code(length)
		}
		return f.Text(length)
	case KindText:
		length := c.MaxLength
		if length <= 0 {
			length = 200
		}
		return f.Text(length)
	case KindDateTime:
		return f.Timestamp(c.YearsBack)
	case KindBoolean:
		ratio := c.TrueRatio
		if ratio == 0 {
			ratio = 0.5
		}
		return f.Bool(ratio)
	case KindEmail:
		return f.Email()
	case KindName:
		switch c.NameVariant {
		case FirstName:
			return f.FirstName()
		case LastName:
			return f.LastName()
		default:
			return f.FullName()
		}
	case KindPhone:
		return f.Phone()
	case KindUUID:
		return f.UUID()
	case KindChoice:
		return f.Choice(c.Choices)
	default:
		return f.Word()
	}
}
