package cleaner

import (
	"strings"
	"testing"

	"pagebrief/internal/scraper"
)

func TestCleanExtractsTitleAndText(t *testing.T) {
	html := "<html><head><title>Example</title></head>" +
		"<body><script>x</script><p>Hello world</p></body></html>"

	title, text := Clean(html, scraper.DefaultRemoveElements())

	if title != "Example" {
		t.Fatalf("unexpected title: %q", title)
	}

	if text != "Hello world" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestCleanRemovesScriptContents(t *testing.T) {
	html := `<html><body><p>visible</p><script>var secret = "hidden";</script></body></html>`

	_, text := Clean(html, scraper.DefaultRemoveElements())

	if strings.Contains(text, "secret") || strings.Contains(text, "hidden") {
		t.Fatalf("script contents leaked into text: %q", text)
	}

	if text != "visible" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestCleanRemovesAllConfiguredElements(t *testing.T) {
	html := `<html><body>
		<nav>site nav</nav>
		<header>page header</header>
		<aside>sidebar</aside>
		<article><p>the story</p></article>
		<form><input name="q"><label>search</label></form>
		<footer>copyright</footer>
		<style>p { color: red; }</style>
	</body></html>`

	_, text := Clean(html, scraper.DefaultRemoveElements())

	for _, removed := range []string{"site nav", "page header", "sidebar", "search", "copyright", "color: red"} {
		if strings.Contains(text, removed) {
			t.Fatalf("expected %q to be removed, text: %q", removed, text)
		}
	}

	if text != "the story" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	html := `<html><body><script>x</script><p>First line</p><p>Second line</p></body></html>`

	_, once := Clean(html, scraper.DefaultRemoveElements())
	_, twice := Clean(once, scraper.DefaultRemoveElements())

	if once != twice {
		t.Fatalf("cleaning is not idempotent: %q != %q", once, twice)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	html := "<html><body><p>  a   lot\tof   space  </p>\n\n\n<p>next</p></body></html>"

	_, text := Clean(html, nil)

	if text != "a lot of space\nnext" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestCleanEmptyHTML(t *testing.T) {
	for _, html := range []string{"", "   ", "<html><head></head></html>", "<html><body></body></html>"} {
		title, text := Clean(html, scraper.DefaultRemoveElements())

		if title != "" {
			t.Fatalf("expected empty title for %q, got %q", html, title)
		}

		if text != "" {
			t.Fatalf("expected empty text for %q, got %q", html, text)
		}
	}
}

func TestCleanMissingTitle(t *testing.T) {
	title, text := Clean("<html><body><p>no title here</p></body></html>", nil)

	if title != "" {
		t.Fatalf("expected empty title, got %q", title)
	}

	if text != "no title here" {
		t.Fatalf("unexpected text: %q", text)
	}
}
