package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/http-boundary/httpvalue"
)

var (
	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type headerFlags []string

func (h *headerFlags) String() string { return strings.Join(*h, ", ") }

func (h *headerFlags) Set(v string) error {
	if !strings.Contains(v, ":") {
		return fmt.Errorf("header must be Name: value, got %q", v)
	}
	*h = append(*h, v)
	return nil
}

func main() {
	var (
		url         = flag.String("url", "", "URL to fetch")
		method      = flag.String("method", "GET", "HTTP method (one of the nine closed verbs)")
		jsonOut     = flag.Bool("json", false, "Print the structured JSON encoding")
		wireOut     = flag.String("wire", "", "Write the boundary encoding to a file")
		timeout     = flag.Duration("timeout", 30*time.Second, "Request timeout")
		interactive = flag.Bool("i", false, "Interactive hex inspector (requires a terminal)")
	)
	var headers headerFlags
	flag.Var(&headers, "header", "Request header as 'Name: value' (repeatable)")
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "Usage: httpfetch -url <url> [-method GET] [-header 'Name: value']...")
		fmt.Fprintln(os.Stderr, "       httpfetch -url <url> -json")
		fmt.Fprintln(os.Stderr, "       httpfetch -url <url> -wire out.bin")
		fmt.Fprintln(os.Stderr, "       httpfetch -url <url> -i  (interactive hex inspector)")
		os.Exit(1)
	}

	if err := run(*url, *method, headers, *jsonOut, *wireOut, *timeout, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(url, methodStr string, headers headerFlags, jsonOut bool, wireOut string, timeout time.Duration, interactive bool) error {
	method, err := httpvalue.MethodFromNative(strings.ToUpper(methodStr))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method.ToNative(), url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for _, h := range headers {
		name, value, _ := strings.Cut(h, ":")
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	nativeResp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	resp, err := httpvalue.ResponseFromNative(nativeResp)
	if err != nil {
		return fmt.Errorf("drain body: %w", err)
	}

	if jsonOut {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if wireOut != "" {
		buf, err := httpvalue.EncodeResponse(resp)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := os.WriteFile(wireOut, buf, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", wireOut, err)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(buf), wireOut)
		return nil
	}

	if interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		return runInteractive(method, url, resp)
	}

	printResponse(resp)
	return nil
}

func printResponse(r httpvalue.Response) {
	fmt.Println(statusStyle.Render(fmt.Sprintf("HTTP %d", r.Status)))
	for _, h := range r.Headers {
		fmt.Printf("%s: %s\n", headerNameStyle.Render(h.Name), hexStyle.Render(hexPreview(h.Value)))
	}
	fmt.Println()
	for _, row := range hexRows(r.Body) {
		fmt.Println(row)
	}
}

// hexPreview shows printable header values as text with the hex form
// alongside; purely binary values show hex only.
func hexPreview(value []byte) string {
	printable := true
	for _, c := range value {
		if c < 0x20 || c > 0x7e {
			printable = false
			break
		}
	}
	if printable {
		return string(value)
	}
	var b strings.Builder
	for i, c := range value {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}

// hexRows renders a classic 16-byte-per-row hex dump with an ASCII
// gutter.
func hexRows(data []byte) []string {
	if len(data) == 0 {
		return []string{"(empty body)"}
	}
	var rows []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		var hexCol strings.Builder
		var asciiCol strings.Builder
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&hexCol, "%02x ", row[i])
				c := row[i]
				if c >= 0x20 && c <= 0x7e {
					asciiCol.WriteByte(c)
				} else {
					asciiCol.WriteByte('.')
				}
			} else {
				hexCol.WriteString("   ")
			}
			if i == 7 {
				hexCol.WriteByte(' ')
			}
		}
		rows = append(rows, fmt.Sprintf("%08x  %s |%s|", off, hexCol.String(), asciiCol.String()))
	}
	return rows
}
