package qa

import "fmt"

// NotPresentAnswer is what the model must reply when the document lacks the answer
const NotPresentAnswer = "Not present in the document."

// BuildPrompt asks the model to answer strictly from document
func BuildPrompt(document, question string) string {
	return fmt.Sprintf(`You are a strict assistant.

Answer the question ONLY using the document below.
If the answer is not present, say exactly:
"%s"

Document:
%s

Question:
%s

Answer:`, NotPresentAnswer, document, question)
}
