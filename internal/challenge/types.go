package challenge

import "slices"

// Kind identifies a challenge variant.
type Kind string

const (
	KindMultipleChoice   Kind = "multiple-choice"
	KindSortTable        Kind = "sort-table"
	KindContextualChoice Kind = "contextual-choice"
	KindInformative      Kind = "informative"
	KindCustom           Kind = "custom"
)

// AllKinds returns all challenge kinds in display order.
func AllKinds() []Kind {
	return []Kind{
		KindMultipleChoice,
		KindSortTable,
		KindContextualChoice,
		KindInformative,
		KindCustom,
	}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple Choice"
	case KindSortTable:
		return "Sort Table"
	case KindContextualChoice:
		return "Contextual Choice"
	case KindInformative:
		return "Informative"
	case KindCustom:
		return "Custom"
	default:
		return string(k)
	}
}

// Type is the content of a challenge. Exactly one variant pointer is set,
// and it matches Kind.
type Type struct {
	Kind             Kind              `json:"kind" yaml:"kind"`
	MultipleChoice   *MultipleChoice   `json:"multipleChoice,omitempty" yaml:"multiple_choice,omitempty"`
	SortTable        *SortTable        `json:"sortTable,omitempty" yaml:"sort_table,omitempty"`
	ContextualChoice *ContextualChoice `json:"contextualChoice,omitempty" yaml:"contextual_choice,omitempty"`
	Informative      *Informative      `json:"informative,omitempty" yaml:"informative,omitempty"`
	Custom           *Custom           `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// MultipleChoiceOption is one selectable answer.
type MultipleChoiceOption struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Question is a single multiple-choice task. Option holds the id of the
// correct MultipleChoiceOption.
type Question struct {
	Question string `json:"question" yaml:"question"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Option   int    `json:"option" yaml:"option"`
}

// MultipleChoice asks the player to pick one option per question.
type MultipleChoice struct {
	ID        string                 `json:"id" yaml:"id"`
	Name      string                 `json:"name" yaml:"name"`
	Lang      string                 `json:"lang,omitempty" yaml:"lang,omitempty"`
	Options   []MultipleChoiceOption `json:"options" yaml:"options"`
	Questions []Question             `json:"questions" yaml:"questions"`
}

// SortTableColumn describes one column of a sort table.
type SortTableColumn struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// SortTableRow is one row of a sort table; Values are in column order.
type SortTableRow struct {
	ID     int      `json:"id" yaml:"id"`
	Values []string `json:"values" yaml:"values"`
}

// SortTable asks the player to put each row's values into the right columns.
type SortTable struct {
	ID      string            `json:"id" yaml:"id"`
	Name    string            `json:"name" yaml:"name"`
	Columns []SortTableColumn `json:"columns" yaml:"columns"`
	Rows    []SortTableRow    `json:"rows" yaml:"rows"`
}

// Choice is a gap inside a contextual item.
type Choice struct {
	ID      int      `json:"id" yaml:"id"`
	Options []string `json:"options" yaml:"options"`
	Correct string   `json:"correct" yaml:"correct"`
}

// ContextItem is a sentence template with one or more gaps ({0}, {1}, ...).
type ContextItem struct {
	Template string   `json:"template" yaml:"template"`
	Choices  []Choice `json:"choices" yaml:"choices"`
}

// ContextualChoice asks the player to fill gaps in sentences.
type ContextualChoice struct {
	ID    string        `json:"id" yaml:"id"`
	Name  string        `json:"name" yaml:"name"`
	Items []ContextItem `json:"items" yaml:"items"`
}

// InformativeText is a localized block of explanatory text.
type InformativeText struct {
	Language string `json:"language" yaml:"language"`
	Text     string `json:"text" yaml:"text"`
}

// Informative shows text only; it has no answers.
type Informative struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Text        []InformativeText `json:"text" yaml:"text"`
}

// Custom is an externally rendered challenge. Its result is computed outside
// the core and delivered with a Finish command.
type Custom struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	HTML        string            `json:"html,omitempty" yaml:"html,omitempty"`
	CSS         string            `json:"css,omitempty" yaml:"css,omitempty"`
	JS          string            `json:"js,omitempty" yaml:"js,omitempty"`
	Tasks       int               `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Data        map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// ID returns the content id of the active variant.
func (t Type) ID() string {
	switch t.Kind {
	case KindMultipleChoice:
		if t.MultipleChoice != nil {
			return t.MultipleChoice.ID
		}
	case KindSortTable:
		if t.SortTable != nil {
			return t.SortTable.ID
		}
	case KindContextualChoice:
		if t.ContextualChoice != nil {
			return t.ContextualChoice.ID
		}
	case KindInformative:
		if t.Informative != nil {
			return t.Informative.ID
		}
	case KindCustom:
		if t.Custom != nil {
			return t.Custom.ID
		}
	}
	return ""
}

// Name returns the display name of the active variant.
func (t Type) Name() string {
	switch t.Kind {
	case KindMultipleChoice:
		if t.MultipleChoice != nil {
			return t.MultipleChoice.Name
		}
	case KindSortTable:
		if t.SortTable != nil {
			return t.SortTable.Name
		}
	case KindContextualChoice:
		if t.ContextualChoice != nil {
			return t.ContextualChoice.Name
		}
	case KindInformative:
		if t.Informative != nil {
			return t.Informative.Name
		}
	case KindCustom:
		if t.Custom != nil {
			return t.Custom.Name
		}
	}
	return ""
}

// Len returns the number of tasks in the challenge.
func (t Type) Len() int {
	switch t.Kind {
	case KindMultipleChoice:
		if t.MultipleChoice != nil {
			return len(t.MultipleChoice.Questions)
		}
	case KindSortTable:
		if t.SortTable != nil {
			return len(t.SortTable.Rows)
		}
	case KindContextualChoice:
		if t.ContextualChoice != nil {
			return len(t.ContextualChoice.Items)
		}
	case KindInformative:
		return 1
	case KindCustom:
		if t.Custom != nil && t.Custom.Tasks > 0 {
			return t.Custom.Tasks
		}
		return 1
	}
	return 0
}

// Options returns the selectable options of the challenge. Only
// multiple-choice challenges have options.
func (t Type) Options() []MultipleChoiceOption {
	if t.Kind == KindMultipleChoice && t.MultipleChoice != nil {
		return t.MultipleChoice.Options
	}
	return nil
}

// OfTasks returns a copy of t reduced to the tasks selected by pattern.
// Informative and custom challenges are returned unchanged.
func (t Type) OfTasks(pattern TaskPattern) Type {
	out := t.Clone()
	switch t.Kind {
	case KindMultipleChoice:
		if out.MultipleChoice != nil {
			out.MultipleChoice.Questions = SelectItems(pattern, out.MultipleChoice.Questions, nil)
		}
	case KindSortTable:
		if out.SortTable != nil {
			out.SortTable.Rows = SelectItems(pattern, out.SortTable.Rows, nil)
		}
	case KindContextualChoice:
		if out.ContextualChoice != nil {
			out.ContextualChoice.Items = SelectItems(pattern, out.ContextualChoice.Items, nil)
		}
	}
	return out
}

// Clone returns a deep copy of t.
func (t Type) Clone() Type {
	out := Type{Kind: t.Kind}
	if mc := t.MultipleChoice; mc != nil {
		c := *mc
		c.Options = slices.Clone(mc.Options)
		c.Questions = slices.Clone(mc.Questions)
		out.MultipleChoice = &c
	}
	if st := t.SortTable; st != nil {
		c := *st
		c.Columns = slices.Clone(st.Columns)
		c.Rows = make([]SortTableRow, len(st.Rows))
		for i, r := range st.Rows {
			c.Rows[i] = SortTableRow{ID: r.ID, Values: slices.Clone(r.Values)}
		}
		if st.Rows == nil {
			c.Rows = nil
		}
		out.SortTable = &c
	}
	if cc := t.ContextualChoice; cc != nil {
		c := *cc
		if cc.Items != nil {
			c.Items = make([]ContextItem, len(cc.Items))
			for i, item := range cc.Items {
				c.Items[i] = cloneContextItem(item)
			}
		}
		out.ContextualChoice = &c
	}
	if inf := t.Informative; inf != nil {
		c := *inf
		c.Text = slices.Clone(inf.Text)
		out.Informative = &c
	}
	if cu := t.Custom; cu != nil {
		c := *cu
		if cu.Data != nil {
			c.Data = make(map[string]string, len(cu.Data))
			for k, v := range cu.Data {
				c.Data[k] = v
			}
		}
		out.Custom = &c
	}
	return out
}

func cloneContextItem(item ContextItem) ContextItem {
	out := ContextItem{Template: item.Template}
	if item.Choices != nil {
		out.Choices = make([]Choice, len(item.Choices))
		for i, ch := range item.Choices {
			out.Choices[i] = Choice{ID: ch.ID, Options: slices.Clone(ch.Options), Correct: ch.Correct}
		}
	}
	return out
}
