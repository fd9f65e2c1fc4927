//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

// FetchFromGutenberg - pull the plain-text edition of a work off the network and strip it to its lines
func FetchFromGutenberg(w WorkEntry) ([]string, error) {
	const (
		FAIL1 = "could not fetch '%s': %w"
		FAIL2 = "could not fetch '%s': HTTP %d from %s"
		FAIL3 = "could not read the body of '%s': %w"
		FAIL4 = "'%s' yielded no text"
		MAXBY = 8 * 1024 * 1024
	)

	u := fmt.Sprintf(vv.GUTENBERGTXTURL, w.EbookNum, w.EbookNum)
	client := &http.Client{Timeout: vv.FETCHTIMEOUT}

	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, w.Title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf(FAIL2, w.Title, resp.StatusCode, u)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MAXBY))
	if err != nil {
		return nil, fmt.Errorf(FAIL3, w.Title, err)
	}

	lines := StripBoilerplate(string(body))
	if len(lines) == 0 {
		return nil, fmt.Errorf(FAIL4, w.Title)
	}

	Msg.FYI(fmt.Sprintf("FetchFromGutenberg() acquired %d lines of '%s'", len(lines), w.Title))
	return lines, nil
}

// StripBoilerplate - keep only the text between the transcriber's START and END markers; drop blanks
func StripBoilerplate(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	all := strings.Split(raw, "\n")

	first := 0
	last := len(all)
	for i := range all {
		if strings.Contains(all[i], vv.GUTENBERGSTARTTAG) {
			first = i + 1
			break
		}
	}
	for i := first; i < len(all); i++ {
		if strings.Contains(all[i], vv.GUTENBERGENDTAG) {
			last = i
			break
		}
	}

	var lines []string
	for i := first; i < last; i++ {
		l := strings.TrimSpace(all[i])
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
