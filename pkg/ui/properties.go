package ui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// Style keys shown for every block, then per kind.
var (
	commonKeys = []model.StyleKey{
		model.StyleWidth, model.StyleHeight, model.StyleMargin, model.StylePadding,
		model.StyleBackgroundColor, model.StyleBorderRadius, model.StyleBorderWidth, model.StyleBorderColor,
	}
	typographyKeys = []model.StyleKey{
		model.StyleFontSize, model.StyleFontWeight, model.StyleTextAlign, model.StyleColor,
	}
	containerKeys = []model.StyleKey{
		model.StyleFlexDirection, model.StyleAlignItems, model.StyleJustifyContent, model.StyleGap,
		model.StyleFlexWrap, model.StyleMinHeight,
		model.StyleBackgroundImage, model.StyleBackgroundSize, model.StyleBackgroundPosition,
	}
	imageKeys = []model.StyleKey{model.StyleObjectFit}
)

// PanelKeys returns the style keys the properties form offers for kind.
func PanelKeys(kind model.Kind) []model.StyleKey {
	keys := slices.Clone(commonKeys)
	switch {
	case kind.IsContainer():
		keys = append(keys, containerKeys...)
	case kind == model.KindImage:
		keys = append(keys, imageKeys...)
	default:
		keys = append(keys, typographyKeys...)
	}
	return keys
}

// StyleChange is one edited property.
type StyleChange struct {
	Key   model.StyleKey
	Value string
}

// PropertiesForm edits the style of one block with a huh form.
type PropertiesForm struct {
	form     *huh.Form
	blockID  string
	keys     []model.StyleKey
	values   map[model.StyleKey]*string
	original model.Style
}

// NewPropertiesForm builds a form for b.
func NewPropertiesForm(b *model.Block, width int) *PropertiesForm {
	p := &PropertiesForm{
		blockID:  b.ID(),
		keys:     PanelKeys(b.Kind()),
		values:   make(map[model.StyleKey]*string),
		original: b.Style(),
	}

	fields := make([]huh.Field, 0, len(p.keys))
	for _, k := range p.keys {
		v := p.original[k]
		p.values[k] = &v
		fields = append(fields, styleField(k, p.values[k]))
	}

	p.form = huh.NewForm(
		huh.NewGroup(fields...).Title(b.Kind().Label() + " properties"),
	).WithShowHelp(true).WithTheme(huh.ThemeCharm())
	if width > 0 {
		p.form = p.form.WithWidth(width)
	}
	return p
}

// styleField returns a select for keys with a fixed choice list and a text
// input otherwise. An empty value means "unset".
func styleField(k model.StyleKey, value *string) huh.Field {
	choices := model.StyleChoices(k)
	if len(choices) == 0 {
		return huh.NewInput().
			Title(k.CSSName()).
			Placeholder("default").
			Value(value)
	}
	opts := []huh.Option[string]{huh.NewOption("(default)", "")}
	if *value != "" && !slices.Contains(choices, *value) {
		opts = append(opts, huh.NewOption(*value, *value))
	}
	opts = append(opts, huh.NewOptions(choices...)...)
	return huh.NewSelect[string]().
		Title(k.CSSName()).
		Options(opts...).
		Value(value)
}

// BlockID is the block being edited.
func (p *PropertiesForm) BlockID() string { return p.blockID }

// Init starts the form.
func (p *PropertiesForm) Init() tea.Cmd { return p.form.Init() }

// Update forwards msg to the form.
func (p *PropertiesForm) Update(msg tea.Msg) tea.Cmd {
	m, cmd := p.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		p.form = f
	}
	return cmd
}

// View renders the form.
func (p *PropertiesForm) View() string { return p.form.View() }

// Done reports whether the user submitted the form.
func (p *PropertiesForm) Done() bool { return p.form.State == huh.StateCompleted }

// Aborted reports whether the form was cancelled.
func (p *PropertiesForm) Aborted() bool { return p.form.State == huh.StateAborted }

// Changes lists the properties whose value differs from the block's, in
// panel order.
func (p *PropertiesForm) Changes() []StyleChange {
	var out []StyleChange
	for _, k := range p.keys {
		if v := *p.values[k]; v != p.original[k] {
			out = append(out, StyleChange{Key: k, Value: v})
		}
	}
	return out
}
