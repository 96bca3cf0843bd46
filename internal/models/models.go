package models

// StatKey names one of the fixed player stats.
type StatKey string

const (
	Absurdism       StatKey = "Absurdism"
	Freedom         StatKey = "Freedom"
	Faith           StatKey = "Faith"
	Stability       StatKey = "Stability"
	SelfAffirmation StatKey = "SelfAffirmation"
)

// StatKeys lists every stat in display order.
var StatKeys = []StatKey{Absurdism, Freedom, Faith, Stability, SelfAffirmation}

// Valid reports whether k is one of StatKeys.
func (k StatKey) Valid() bool {
	for _, s := range StatKeys {
		if s == k {
			return true
		}
	}
	return false
}

// Comparison operators accepted in a stat Condition.
const (
	OpGT = ">"
	OpGE = ">="
	OpLT = "<"
	OpLE = "<="
	OpEQ = "=="
	OpNE = "!="
)

// Condition gates a Choice. Exactly one discriminant is consulted, in order:
// FlagSet, FlagUnset, then the Stat comparison. A Condition with none of them holds.
type Condition struct {
	FlagSet   *string `yaml:"flag_set,omitempty" json:"flag_set,omitempty"`
	FlagUnset *string `yaml:"flag_unset,omitempty" json:"flag_unset,omitempty"`
	Stat      StatKey `yaml:"stat,omitempty" json:"stat,omitempty"`
	Op        string  `yaml:"op,omitempty" json:"op,omitempty"`
	Value     int     `yaml:"value,omitempty" json:"value,omitempty"`
}

// Effect mutates GameState when its Choice is taken. Every populated field fires.
type Effect struct {
	Stat      StatKey `yaml:"stat,omitempty" json:"stat,omitempty"`
	Delta     int     `yaml:"delta,omitempty" json:"delta,omitempty"`
	SetFlag   string  `yaml:"set_flag,omitempty" json:"set_flag,omitempty"`
	ClearFlag string  `yaml:"clear_flag,omitempty" json:"clear_flag,omitempty"`
	Journal   string  `yaml:"journal,omitempty" json:"journal,omitempty"`
}

// Choice is an edge from one node to another.
type Choice struct {
	Text       string      `yaml:"text" json:"text"`
	Next       string      `yaml:"next" json:"next"`
	Conditions []Condition `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Effects    []Effect    `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// NodeDef is one narrative beat.
type NodeDef struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Body    string   `yaml:"body,omitempty" json:"body,omitempty"`
	Choices []Choice `yaml:"choices,omitempty" json:"choices"`
	End     bool     `yaml:"end,omitempty" json:"end"`
}

// Clone returns a deep copy of n.
func (n NodeDef) Clone() NodeDef {
	out := n
	if n.Choices == nil {
		out.Choices = []Choice{}
		return out
	}
	out.Choices = make([]Choice, len(n.Choices))
	for i, c := range n.Choices {
		cc := c
		if c.Conditions != nil {
			cc.Conditions = make([]Condition, len(c.Conditions))
			for j, cond := range c.Conditions {
				cc.Conditions[j] = cond.clone()
			}
		}
		if c.Effects != nil {
			cc.Effects = append([]Effect(nil), c.Effects...)
		}
		out.Choices[i] = cc
	}
	return out
}

func (c Condition) clone() Condition {
	out := c
	if c.FlagSet != nil {
		v := *c.FlagSet
		out.FlagSet = &v
	}
	if c.FlagUnset != nil {
		v := *c.FlagUnset
		out.FlagUnset = &v
	}
	return out
}

// ContentDoc is an authored story document.
type ContentDoc struct {
	Title string    `yaml:"title,omitempty" json:"title,omitempty"`
	Start string    `yaml:"start" json:"start"`
	Nodes []NodeDef `yaml:"nodes" json:"nodes"`
}
