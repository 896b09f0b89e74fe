package templates

import (
	"strings"
	"testing"
)

func TestTitleTagCombinesPageAndSite(t *testing.T) {
	t.Parallel()

	got := TitleTag("The Spark Playhouse", "About", " | ")
	want := "<title>About | The Spark Playhouse</title>"
	if string(got) != want {
		t.Fatalf("TitleTag() = %q, want %q", got, want)
	}
}

func TestTitleTagSiteNameOnlyWithoutPageTitle(t *testing.T) {
	t.Parallel()

	got := TitleTag("The Spark Playhouse", "", " | ")
	want := "<title>The Spark Playhouse</title>"
	if string(got) != want {
		t.Fatalf("TitleTag() = %q, want %q", got, want)
	}
}

func TestTitleTagEmptyWithoutAnything(t *testing.T) {
	t.Parallel()

	got := TitleTag("", "", " | ")
	if string(got) != "<title></title>" {
		t.Fatalf("TitleTag() = %q, want empty title element", got)
	}
}

func TestTitleTagCustomSeparator(t *testing.T) {
	t.Parallel()

	got := TitleTag("Site", "Page", " - ")
	if string(got) != "<title>Page - Site</title>" {
		t.Fatalf("TitleTag() = %q", got)
	}
}

func TestTitleTagDefaultsSeparator(t *testing.T) {
	t.Parallel()

	got := TitleTag("Site", "Page", "")
	if string(got) != "<title>Page | Site</title>" {
		t.Fatalf("TitleTag() = %q", got)
	}
}

func TestTitleTagTrimsSiteName(t *testing.T) {
	t.Parallel()

	got := TitleTag("  Site  ", "", " | ")
	if string(got) != "<title>Site</title>" {
		t.Fatalf("TitleTag() = %q", got)
	}
}

func TestTitleTagEscapesContent(t *testing.T) {
	t.Parallel()

	got := string(TitleTag("Site", "<script>", " | "))
	if strings.Contains(got, "<script>") {
		t.Fatalf("TitleTag() = %q, want escaped content", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("TitleTag() = %q, want entity-escaped content", got)
	}
}

func TestStylesheetTag(t *testing.T) {
	t.Parallel()

	got := string(StylesheetTag("/static/tailwindcss/min.css"))
	want := `<link rel="stylesheet" href="/static/tailwindcss/min.css">`
	if got != want {
		t.Fatalf("StylesheetTag() = %q, want %q", got, want)
	}
}

func TestScriptTagIsDeferred(t *testing.T) {
	t.Parallel()

	got := string(ScriptTag("/static/alpinejs/cdn.min.js"))
	if !strings.Contains(got, `src="/static/alpinejs/cdn.min.js"`) {
		t.Fatalf("ScriptTag() = %q, want src attribute", got)
	}
	if !strings.Contains(got, " defer") {
		t.Fatalf("ScriptTag() = %q, want defer attribute", got)
	}
}

func TestAssetTagsPointAtStaticTree(t *testing.T) {
	t.Parallel()

	if !strings.Contains(string(TailwindCSSTag()), TailwindCSSPath) {
		t.Fatalf("TailwindCSSTag() = %q", TailwindCSSTag())
	}
	if !strings.Contains(string(AlpineJSTag()), AlpineJSPath) {
		t.Fatalf("AlpineJSTag() = %q", AlpineJSTag())
	}
}
