package chromedom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// helperJS installs window.__scrolly, which tags elements with a stable
// data-scrolly-ref so Go can address them across Evaluate calls.
const helperJS = `window.__scrolly = window.__scrolly || (() => {
  let next = 0;
  const tag = (e) => {
    if (!e) return "";
    if (!e.dataset.scrollyRef) e.dataset.scrollyRef = String(++next);
    return e.dataset.scrollyRef;
  };
  const el = (r) => r ? document.querySelector('[data-scrolly-ref="' + r + '"]') : null;
  const root = (r) => r ? el(r) : document;
  return {
    tag, el,
    one: (r, sel) => { const p = root(r); return p ? tag(p.querySelector(sel)) : ""; },
    all: (r, sel) => { const p = root(r); return p ? Array.from(p.querySelectorAll(sel), tag) : []; },
    cls: (c) => "." + CSS.escape(c),
    rect: (r) => {
      const e = el(r);
      if (!e) return {top: 0, left: 0, width: 0, height: 0, offset: 0};
      const b = e.getBoundingClientRect();
      return {top: b.top, left: b.left, width: b.width, height: b.height, offset: e.offsetHeight};
    },
    append: (r, classes) => {
      const p = el(r);
      if (!p) return "";
      const c = document.createElement("div");
      c.className = classes.join(" ");
      p.appendChild(c);
      return tag(c);
    },
  };
})(); true`

// js formats a helper call, JSON-encoding every argument.
func js(format string, args ...interface{}) string {
	quoted := make([]interface{}, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			b = []byte("null")
		}
		quoted[i] = string(b)
	}
	return fmt.Sprintf(format, quoted...)
}

// classList drops empty class tokens.
func classList(classes []string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
