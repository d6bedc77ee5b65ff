// Package token defines lexical token kinds and trivia for both dialects.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     TagOpen/TagClose where it is the lower-cased tag name.
//   - Token.Span always covers the token's exact source bytes.
//   - Script words are all Ident; keywords are contextual and matched
//     case-insensitively by the parser.
//   - Comments are leading Trivia and never appear in the script token
//     stream. `/** */` comments become TriviaDocBlock.
package token
