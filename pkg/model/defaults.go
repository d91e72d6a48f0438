package model

// Welcome document copy, shared with the export tests.
const (
	WelcomeTitle = "Welcome to Lumina Builder"
	WelcomeText  = "Start building your amazing HTML template by adding blocks from the left sidebar."
)

// DefaultDocument returns the built-in starting page: one centered container
// holding a title and a text block. It is also the fallback whenever saved
// state is missing or corrupt.
func DefaultDocument() Document {
	title := NewBlock("initial-title", KindTitle, WelcomeTitle, Style{
		StyleFontSize:   "36px",
		StyleFontWeight: "700",
		StyleColor:      "#1e293b",
		StyleTextAlign:  "center",
	})
	text := NewBlock("initial-text", KindText, WelcomeText, Style{
		StyleFontSize:  "18px",
		StyleColor:     "#64748b",
		StyleTextAlign: "center",
		StyleWidth:     "80%",
	})
	container := NewBlock("initial-container", KindContainer, "", Style{
		StylePadding:         "40px",
		StyleBackgroundColor: "#ffffff",
		StyleDisplay:         "flex",
		StyleFlexDirection:   "column",
		StyleAlignItems:      "center",
		StyleJustifyContent:  "center",
		StyleGap:             "20px",
		StyleWidth:           "100%",
		StyleMinHeight:       "200px",
	}, title, text)
	return Document{container}
}

// Choice lists offered by the properties form.
var (
	FontSizes       = []string{"12px", "14px", "16px", "18px", "20px", "24px", "32px", "40px", "48px", "64px"}
	FontWeights     = []string{"300", "400", "500", "600", "700", "800"}
	TextAligns      = []string{"left", "center", "right"}
	BackgroundSizes = []string{"cover", "contain", "auto"}
	ObjectFits      = []string{"cover", "contain", "fill", "none"}
	FlexDirections  = []string{"column", "row"}
	FlexWraps       = []string{"nowrap", "wrap", "wrap-reverse"}
	AlignItems      = []string{"stretch", "flex-start", "center", "flex-end"}
	JustifyContents = []string{"flex-start", "center", "flex-end", "space-between", "space-around"}
)

// StyleChoices returns the fixed option list for keys that have one.
func StyleChoices(key StyleKey) []string {
	switch key {
	case StyleFontSize:
		return FontSizes
	case StyleFontWeight:
		return FontWeights
	case StyleTextAlign:
		return TextAligns
	case StyleBackgroundSize:
		return BackgroundSizes
	case StyleObjectFit:
		return ObjectFits
	case StyleFlexDirection:
		return FlexDirections
	case StyleFlexWrap:
		return FlexWraps
	case StyleAlignItems:
		return AlignItems
	case StyleJustifyContent:
		return JustifyContents
	}
	return nil
}
