package vcard

import (
	"context"
	"strings"
	"time"
)

const crlf = "\r\n"

// Render assembles the card. Fields are emitted in a fixed order and each
// group keeps its insertion order:
//
//	BEGIN, VERSION, N, FN, ORG, TITLE, PHOTO, TEL, ADR+LABEL, EMAIL,
//	items, URL, REV, END
//
// Only the revision timestamp can fail here; everything else was validated
// when it was added. Render never modifies the builder, so repeated calls
// with a fixed revision produce identical output.
func (b *Builder) Render(ctx context.Context) (string, error) {
	start := time.Now()
	emitRenderStart(ctx, b.id)

	var out string
	var retErr error
	defer func() {
		emitRenderComplete(ctx, b.id, len(out), time.Since(start), b.counts(), retErr)
	}()

	rev, err := FormatRevision(b.revision, b.clock.Now())
	if err != nil {
		retErr = err
		return "", retErr
	}

	var sb strings.Builder
	b.writeBody(&sb)
	sb.WriteString("REV:" + rev + crlf)
	sb.WriteString("END:VCARD" + crlf)

	out = sb.String()
	return out, nil
}

// String renders the card, returning the error message in place of the
// card if rendering fails. Use Render to handle errors.
func (b *Builder) String() string {
	out, err := b.Render(context.Background())
	if err != nil {
		return err.Error()
	}
	return out
}

// writeBody writes everything from BEGIN up to, but not including, REV.
// Every user-supplied fragment is escaped so it cannot end its line.
func (b *Builder) writeBody(sb *strings.Builder) {
	n, fn := b.names()

	sb.WriteString("BEGIN:VCARD" + crlf)
	sb.WriteString("VERSION:3.0" + crlf)
	sb.WriteString("N:" + n + crlf)
	sb.WriteString("FN:" + EscapeText(fn) + crlf)
	sb.WriteString("ORG:" + EscapeText(b.organization) + crlf)
	sb.WriteString("TITLE:" + EscapeText(b.title) + crlf)

	writePhoto(sb, b.image)

	for _, p := range b.phones {
		sb.WriteString("TEL;TYPE=" + escapeBreaks(p.typ) + ",VOICE:" + escapeBreaks(p.number) + crlf)
	}
	for _, a := range b.addresses {
		typ := escapeBreaks(a.typ)
		sb.WriteString("ADR;TYPE=" + typ + ":" + FormatAddress(a.raw) + crlf)
		sb.WriteString("LABEL;TYPE=" + typ + ":" + FormatLabel(a.raw) + crlf)
	}
	for _, e := range b.emails {
		sb.WriteString("EMAIL;TYPE=" + escapeBreaks(e.typ) + ",INTERNET:" + escapeBreaks(e.value) + crlf)
	}
	for _, it := range b.items {
		sb.WriteString(escapeBreaks(it.serviceCode) + ";TYPE=" + escapeBreaks(it.typ) + "," +
			escapeBreaks(it.secondaryCode) + ":" + escapeBreaks(it.value) + crlf)
	}
	for _, l := range b.urls {
		sb.WriteString(escapeBreaks(l.tag) + ";TYPE=" + escapeBreaks(l.typ) + ",INTERNET:" + escapeBreaks(l.value) + crlf)
	}
}

// names returns the structured N value and the FN value.
//
// When any part was set the parts win and FN is joined from them;
// otherwise the parts are split from the full name. The derivation works on
// locals so the builder is never modified.
func (b *Builder) names() (n, fn string) {
	first, middle, last := b.firstName, b.middleName, b.lastName
	if b.partsSet {
		fn = JoinName(first, middle, last)
	} else {
		first, middle, last = SplitFullName(b.fullName)
		fn = b.fullName
	}
	return EscapeText(last) + ";" + EscapeText(first) + ";" + EscapeText(middle) + ";", fn
}

// writePhoto writes the PHOTO field for img, if any.
func writePhoto(sb *strings.Builder, img Image) {
	if img == nil || img.MediaType() == "" {
		return
	}
	switch v := img.(type) {
	case InlineImage:
		if v.Data == "" {
			return
		}
		// Folded data ends with an empty line.
		sb.WriteString("PHOTO;TYPE=" + escapeBreaks(v.MIMEType) + ";ENCODING=BASE64:" + crlf + " " + v.Data + crlf + crlf)
	case LinkedImage:
		if v.URL == "" {
			return
		}
		sb.WriteString("PHOTO;VALUE=URI;TYPE=" + escapeBreaks(v.MIMEType) + ":" + escapeBreaks(v.URL) + crlf)
	}
}

// urlTag resolves the field tag for a URL entry: URL when no service type
// is given or the service type maps to a configured code, X-<SERVICE>
// otherwise.
func urlTag(cfg Config, serviceType string) string {
	if serviceType == "" {
		return defaultServiceCode
	}
	if code := cfg.ServiceTypeCodes[strings.ToLower(serviceType)]; code != "" {
		return code
	}
	return "X-" + upper(serviceType)
}

func (b *Builder) counts() renderCounts {
	return renderCounts{
		phones:    len(b.phones),
		addresses: len(b.addresses),
		emails:    len(b.emails),
		items:     len(b.items),
		urls:      len(b.urls),
	}
}
