package console

import (
	"regexp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("match", func() {
	trust := Literal("Are you sure you trust the authenticity of this host (yes/no)?")
	failure := Literal("Error")

	// Given unread output containing two alternatives
	// When both patterns match
	// Then the alternative listed first wins regardless of position
	It("should prefer the first listed alternative", func() {
		c := &Console{buf: []byte("Error: self-signed\nAre you sure you trust the authenticity of this host (yes/no)? ")}

		idx, ok := c.match([]Pattern{trust, failure})

		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(0))
		Expect(c.Pending()).To(Equal(" "))
	})

	It("should consume output up to the end of the match", func() {
		c := &Console{buf: []byte("step one\nstep two\n")}

		idx, ok := c.match([]Pattern{Literal("one")})

		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(0))
		Expect(c.Before()).To(Equal("step one"))
		Expect(c.Pending()).To(Equal("\nstep two\n"))
	})

	It("should support regular expressions", func() {
		c := &Console{buf: []byte("exit code 17\n")}

		idx, ok := c.match([]Pattern{failure, Regexp(regexp.MustCompile(`code \d+`))})

		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(1))
	})

	It("should never match EOF against buffered output", func() {
		c := &Console{buf: []byte("anything")}

		_, ok := c.match([]Pattern{EOF})

		Expect(ok).To(BeFalse())
		Expect(indexOfEOF([]Pattern{failure, EOF})).To(Equal(1))
		Expect(indexOfEOF([]Pattern{failure})).To(Equal(-1))
	})

	It("should render patterns for error messages", func() {
		Expect(DescribePatterns(trust, EOF)).To(Equal([]string{trust.String(), "<EOF>"}))
	})
})
