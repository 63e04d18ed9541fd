package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON renderer shared by handlers and middlewares.
func New() *render.Render {
	return render.New(render.Options{
		UnEscapeHTML: true,
	})
}
