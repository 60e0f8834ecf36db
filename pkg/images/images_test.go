package images_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/installer-driver/pkg/images"
)

var _ = Describe("Images", func() {
	Describe("QualifiedName", func() {
		DescribeTable("should qualify deployment images per environment",
			func(image string, env images.Environment, expected string) {
				name, err := images.QualifiedName(image, env)
				Expect(err).NotTo(HaveOccurred())
				Expect(name).To(Equal(expected))
			},
			Entry("prod backend", "plugin-backend", images.EnvironmentProd, "nvcr.io/nvidia/vcenter-plugin/backend"),
			Entry("stage ui", "plugin-ui", images.EnvironmentStage, "stg.nvcr.io/nvidia/vcenter-plugin/ui"),
			Entry("dev agent", "plugin-agent", images.EnvironmentDev, "registry.dev.example.com/vcenter-plugin/agent"),
		)

		It("should reject unknown images", func() {
			_, err := images.QualifiedName("unknown", images.EnvironmentProd)
			Expect(err).To(MatchError(ContainSubstring("unknown deployment image")))
		})

		It("should reject unknown environments", func() {
			_, err := images.QualifiedName("plugin-ui", images.Environment("qa"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ResolveEnvironment", func() {
		It("should default to prod when the variable is unset", func() {
			env, err := images.ResolveEnvironment(func(string) (string, bool) { return "", false })
			Expect(err).NotTo(HaveOccurred())
			Expect(env).To(Equal(images.EnvironmentProd))
		})

		It("should read the variable", func() {
			env, err := images.ResolveEnvironment(func(key string) (string, bool) {
				Expect(key).To(Equal(images.EnvVar))
				return "stage", true
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(env).To(Equal(images.EnvironmentStage))
		})

		It("should reject invalid values", func() {
			_, err := images.ResolveEnvironment(func(string) (string, bool) { return "qa", true })
			Expect(err).To(HaveOccurred())
		})
	})

	It("should list image names in order", func() {
		Expect(images.Names()).To(Equal([]string{"plugin-agent", "plugin-backend", "plugin-registry", "plugin-ui"}))
	})
})
