package console

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"FilmRiddles/internal/domain"
	"FilmRiddles/internal/ports"
)

// Presenter renders riddle cards to a terminal writer. It is the display
// collaborator of the supply pipeline.
type Presenter struct {
	out     io.Writer
	printer *message.Printer
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter writes to the given writer (typically os.Stdout).
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// ShowRiddle prints one riddle card with a locale-formatted upvote count.
func (p *Presenter) ShowRiddle(riddle domain.ValidatedRiddle) {
	fmt.Fprintf(p.out, "\n%s\n", riddle.Title)
	fmt.Fprintf(p.out, "  answer: %s\n", riddle.Answer)
	p.printer.Fprintf(p.out, "  %d upvotes\n", riddle.Score)
}

// ShowPoster prints the resolved poster URL for an already-shown riddle; an
// empty URL means enrichment found nothing and prints nothing.
func (p *Presenter) ShowPoster(answer, url string) {
	if url == "" {
		return
	}
	fmt.Fprintf(p.out, "  poster for %q: %s\n", answer, url)
}

// ShowExhausted reports the only user-facing failure of the pipeline.
func (p *Presenter) ShowExhausted() {
	fmt.Fprintln(p.out, "no more valid riddles found; try another sort mode or reload")
}
