package analysis

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// approxBytesPerToken sizes the byte-budget fallback used when the tokenizer
// cannot initialize (its vocabulary is fetched lazily and may be missing in
// offline deployments).
const approxBytesPerToken = 4

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
)

func getEncoder() *tiktoken.Tiktoken {
	encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			return
		}
		encoder = enc
	})
	return encoder
}

// TruncateTokens bounds text to at most maxTokens model tokens, dropping the
// tail. maxTokens <= 0 leaves the text untouched.
func TruncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}
	if enc := getEncoder(); enc != nil {
		ids := enc.Encode(text, nil, nil)
		if len(ids) <= maxTokens {
			return text
		}
		return enc.Decode(ids[:maxTokens])
	}
	return truncateBytes(text, maxTokens*approxBytesPerToken)
}

// truncateBytes cuts at a byte budget without splitting a UTF-8 sequence.
func truncateBytes(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && (text[cut]&0xC0) == 0x80 {
		cut--
	}
	return text[:cut]
}
