package driver

import (
	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/pkg/console"
)

var _ = g.Describe("transition table", func() {
	target := models.Target{Host: "h", Username: "u", Password: "p", TrustFingerprint: true}

	g.It("should cover every waiting state", func() {
		t := Script{Operation: models.OperationInstall, Target: target}.table()

		for _, s := range []State{AwaitHost, AwaitUser, AwaitPassword, AwaitTrustOrError, AwaitFingerprint, AwaitTerminal} {
			Expect(t).To(HaveKey(s), s.String())
			Expect(t[s].branches).To(HaveLen(len(t[s].expect)), s.String())
		}
		Expect(t).NotTo(HaveKey(Done))
	})

	g.It("should check the trust prompt before the error marker", func() {
		t := Script{Operation: models.OperationInstall, Target: target}.table()

		Expect(console.DescribePatterns(t[AwaitTrustOrError].expect...)).To(Equal([]string{PromptTrust, MarkerError}))
		Expect(t[AwaitTrustOrError].branches[0].reply).To(Equal("yes"))
		Expect(t[AwaitTrustOrError].branches[0].next).To(Equal(AwaitTerminal))
	})

	g.It("should route an untrusted target through the fingerprint prompt", func() {
		untrusted := target
		untrusted.TrustFingerprint = false
		untrusted.Fingerprint = "AA"
		t := Script{Operation: models.OperationInstall, Target: untrusted}.table()

		Expect(t[AwaitTrustOrError].branches[0].reply).To(Equal("no"))
		Expect(t[AwaitTrustOrError].branches[0].next).To(Equal(AwaitFingerprint))
		Expect(t[AwaitFingerprint].branches[0].reply).To(Equal("AA"))
	})

	g.It("should only wait for the error marker when failure is expected", func() {
		t := Script{Operation: models.OperationUninstall, Target: target, ExpectFailure: true}.table()

		Expect(console.DescribePatterns(t[AwaitTerminal].expect...)).To(Equal([]string{MarkerError}))
	})

	g.It("should accept the unregister marker on uninstall only", func() {
		install := Script{Operation: models.OperationInstall, Target: target}.table()
		uninstall := Script{Operation: models.OperationUninstall, Target: target}.table()

		Expect(console.DescribePatterns(install[AwaitTerminal].expect...)).To(Equal([]string{MarkerSuccess, "<EOF>"}))
		Expect(console.DescribePatterns(uninstall[AwaitTerminal].expect...)).To(Equal([]string{MarkerSuccess, MarkerUnregister, "<EOF>"}))
	})

	g.It("should mark the password as secret", func() {
		t := Script{Operation: models.OperationInstall, Target: target}.table()

		Expect(t[AwaitPassword].branches[0].secret).To(BeTrue())
	})

	g.It("should only pass --force to install", func() {
		Expect(Script{Operation: models.OperationInstall, Force: true}.Args()).To(Equal([]string{"--force"}))
		Expect(Script{Operation: models.OperationUninstall, Force: true}.Args()).To(BeEmpty())
	})
})
