package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// decoderFor resolves an --encoding flag value to a transform decoder.
// UTF-8 needs no transform; GBK and Big5 cover the other encodings
// commonly used for Chinese training corpora.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return nil, nil
	case "gbk", "gb2312":
		return simplifiedchinese.GBK.NewDecoder(), nil
	case "big5":
		return traditionalchinese.Big5.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (supported: utf8, gbk, big5)", name)
	}
}

// readText reads the whole file at path, decoded from encodingName to UTF-8.
func readText(path, encodingName string) (string, error) {
	dec, err := decoderFor(encodingName)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if dec == nil {
		return string(raw), nil
	}
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s as %s: %w", path, encodingName, err)
	}
	return string(out), nil
}

// writeText writes text to path, encoded from UTF-8 to encodingName.
func writeText(path, encodingName, text string) error {
	switch strings.ToLower(encodingName) {
	case "", "utf8", "utf-8":
		return os.WriteFile(path, []byte(text), 0644)
	case "gbk", "gb2312":
		out, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return fmt.Errorf("encode as %s: %w", encodingName, err)
		}
		return os.WriteFile(path, out, 0644)
	case "big5":
		out, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return fmt.Errorf("encode as %s: %w", encodingName, err)
		}
		return os.WriteFile(path, out, 0644)
	default:
		return fmt.Errorf("unsupported encoding %q (supported: utf8, gbk, big5)", encodingName)
	}
}
