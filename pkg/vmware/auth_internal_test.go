package vmware

import (
	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = g.Describe("missingPrivileges", func() {
	g.It("should accept a user holding every required privilege", func() {
		granted := append([]string{"System.View"}, PluginPrivileges...)

		Expect(missingPrivileges("admin", granted, PluginPrivileges)).To(Succeed())
	})

	g.It("should name the privileges the user lacks", func() {
		err := missingPrivileges("admin", []string{"Extension.Register"}, PluginPrivileges)

		Expect(err).To(MatchError(ContainSubstring("Extension.Update")))
		Expect(err).To(MatchError(ContainSubstring("Extension.Unregister")))
		Expect(err.Error()).NotTo(ContainSubstring("Extension.Register "))
	})
})
