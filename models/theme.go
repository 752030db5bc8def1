package models

type ThemeMode string

const (
	Light ThemeMode = "light"
	Dark  ThemeMode = "dark"
)

type Palette struct {
	Mode       ThemeMode `json:"mode"`
	Primary    string    `json:"primary"`
	Secondary  string    `json:"secondary"`
	Background string    `json:"background"`
	Paper      string    `json:"paper"`
}

type Typography struct {
	FontFamily    string `json:"font_family"`
	HeadingWeight int    `json:"heading_weight"`
}

type ComponentOverrides struct {
	ButtonTextTransform string `json:"button_text_transform"`
	CardTransition      string `json:"card_transition"`
	CardHoverTransform  string `json:"card_hover_transform"`
	CardHoverShadow     string `json:"card_hover_shadow"`
}

type ThemeConfig struct {
	Palette    Palette            `json:"palette"`
	Typography Typography         `json:"typography"`
	Components ComponentOverrides `json:"components"`
}
