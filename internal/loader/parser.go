// Package loader parses the raw quiz corpus: KOI8-R encoded text files
// where questions and answers are blank-line separated paragraphs
// ("Вопрос N:" followed by "Ответ:").
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

const paragraphSeparator = "\n\n"

// ParseFile reads one KOI8-R encoded corpus file and extracts its
// question/answer pairs. Paragraphs that do not start with "Вопрос" are
// skipped; a question paragraph is paired with the paragraph that
// immediately follows it.
func ParseFile(r io.Reader) ([]store.QuestionAnswer, error) {
	decoded, err := io.ReadAll(charmap.KOI8R.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("decode koi8-r: %w", err)
	}

	paragraphs := strings.Split(string(decoded), paragraphSeparator)

	var pairs []store.QuestionAnswer
	for i, paragraph := range paragraphs {
		if !strings.HasPrefix(strings.TrimSpace(paragraph), "Вопрос") {
			continue
		}
		if i+1 >= len(paragraphs) {
			break
		}
		question := paragraphBody(paragraph)
		answer := strings.TrimSuffix(paragraphBody(paragraphs[i+1]), ".")
		if question == "" || answer == "" {
			continue
		}
		pairs = append(pairs, store.QuestionAnswer{Question: question, Answer: answer})
	}
	return pairs, nil
}

// paragraphBody returns the text after the "Вопрос N:" / "Ответ:" header.
func paragraphBody(paragraph string) string {
	i := strings.Index(paragraph, ":\n")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(paragraph[i+len(":\n"):])
}

// ParseDir parses every file in dir and concatenates the results.
func ParseDir(dir string) ([]store.QuestionAnswer, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var pairs []store.QuestionAnswer
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		filePairs, err := ParseFile(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		pairs = append(pairs, filePairs...)
	}
	return pairs, nil
}
