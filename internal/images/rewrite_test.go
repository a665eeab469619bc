package images

import "testing"

const base = "https://raw.githubusercontent.com/octo/blog/main"

func TestRewrite(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "site-relative image",
			input:    "Look: ![](/images/a.png)\n",
			expected: "Look: ![](" + base + "/images/a.png)\n",
		},
		{
			name:     "multiple images on one line",
			input:    "![](/a.png) and ![](/b.png)",
			expected: "![](" + base + "/a.png) and ![](" + base + "/b.png)",
		},
		{
			name:     "alt text is left alone",
			input:    "![diagram](/a.png)",
			expected: "![diagram](/a.png)",
		},
		{
			name:     "relative path without slash is left alone",
			input:    "![](images/a.png)",
			expected: "![](images/a.png)",
		},
		{
			name:     "absolute url is left alone",
			input:    "![](https://example.com/a.png)",
			expected: "![](https://example.com/a.png)",
		},
		{
			name:     "fenced block untouched",
			input:    "```![](/img.png)```\n![](/img.png)\n",
			expected: "```![](/img.png)```\n![](" + base + "/img.png)\n",
		},
		{
			name:     "multi-line fenced block untouched",
			input:    "before ![](/x.png)\n```md\n![](/x.png)\n```\nafter ![](/y.png)\n",
			expected: "before ![](" + base + "/x.png)\n```md\n![](/x.png)\n```\nafter ![](" + base + "/y.png)\n",
		},
		{
			name:     "inline code is not protected",
			input:    "`![](/x.png)`",
			expected: "`![](" + base + "/x.png)`",
		},
		{
			name:     "unclosed fence is not protected",
			input:    "![](/a.png)\n```\n![](/b.png)\n",
			expected: "![](" + base + "/a.png)\n```\n![](" + base + "/b.png)\n",
		},
	}

	rw := NewRewriter(base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := rw.Rewrite(tt.input)
			if actual != tt.expected {
				t.Errorf("Rewrite(%q) =\n%q\nwant\n%q", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestRewriteDisabled(t *testing.T) {
	rw := NewRewriter("")
	if rw.Enabled() {
		t.Fatal("rewriter without base should be disabled")
	}

	inputs := []string{
		"",
		"![](/img.png)",
		"```\n![](/img.png)\n```\n![](/other.png)",
	}
	for _, in := range inputs {
		if out := rw.Rewrite(in); out != in {
			t.Errorf("Rewrite(%q) = %q, want identity", in, out)
		}
	}
}
