package theme

import (
	"sync"

	"storefront/models"
)

type Controller struct {
	mu   sync.Mutex
	mode models.ThemeMode
}

func NewController() *Controller {
	return &Controller{mode: models.Light}
}

// Toggle flips between light and dark and returns the new mode.
func (c *Controller) Toggle() models.ThemeMode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == models.Light {
		c.mode = models.Dark
	} else {
		c.mode = models.Light
	}

	return c.mode
}

func (c *Controller) Mode() models.ThemeMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Config() models.ThemeConfig {
	return ConfigFor(c.Mode())
}

// ConfigFor derives the style configuration for mode. Anything that is not
// dark is treated as light.
func ConfigFor(mode models.ThemeMode) models.ThemeConfig {
	background, paper := "#f5f5f5", "#ffffff"
	if mode == models.Dark {
		background, paper = "#121212", "#1e1e1e"
	} else {
		mode = models.Light
	}

	return models.ThemeConfig{
		Palette: models.Palette{
			Mode:       mode,
			Primary:    "#1976d2",
			Secondary:  "#f50057",
			Background: background,
			Paper:      paper,
		},
		Typography: models.Typography{
			FontFamily:    "Roboto, Arial, sans-serif",
			HeadingWeight: 600,
		},
		Components: models.ComponentOverrides{
			ButtonTextTransform: "none",
			CardTransition:      "transform 0.3s ease-in-out, box-shadow 0.3s ease-in-out",
			CardHoverTransform:  "translateY(-5px)",
			CardHoverShadow:     "0 4px 20px rgba(0,0,0,0.1)",
		},
	}
}
