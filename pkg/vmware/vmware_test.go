package vmware_test

import (
	"context"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/simulator"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/kubev2v/installer-driver/pkg/vmware"
)

var _ = Describe("vmware", func() {
	var (
		ctx   context.Context
		model *simulator.Model
		srv   *simulator.Server
	)

	BeforeEach(func() {
		ctx = context.Background()

		model = simulator.VPX()
		Expect(model.Create()).To(Succeed())
		model.Service.Listen = &url.URL{User: url.UserPassword("administrator@vsphere.local", "s3cret")}
		srv = model.Service.NewServer()

		DeferCleanup(func() {
			srv.Close()
			model.Remove()
		})
	})

	Describe("ServiceURL", func() {
		DescribeTable("should build the sdk endpoint",
			func(host, expected string) {
				u, err := vmware.ServiceURL(host)
				Expect(err).NotTo(HaveOccurred())
				Expect(u.String()).To(Equal(expected))
			},
			Entry("bare address", "10.0.0.1", "https://10.0.0.1/sdk"),
			Entry("address with port", "10.0.0.1:8443", "https://10.0.0.1:8443/sdk"),
			Entry("full url", "https://vc.example.com/sdk", "https://vc.example.com/sdk"),
		)
	})

	Describe("Thumbprint", func() {
		// Given a vCenter serving TLS
		// When we read its thumbprint
		// Then it matches the SHA-1 fingerprint of the served certificate
		It("should return the SHA-1 thumbprint of the served certificate", func() {
			thumbprint, err := vmware.Thumbprint(srv.URL.Host)

			Expect(err).NotTo(HaveOccurred())
			Expect(thumbprint).To(Equal(soap.ThumbprintSHA1(srv.Certificate())))
			Expect(thumbprint).To(MatchRegexp(`^([0-9A-F]{2}:){19}[0-9A-F]{2}$`))
		})

		It("should fail when nothing listens", func() {
			_, err := vmware.Thumbprint("127.0.0.1:1")

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Login", func() {
		It("should log in with valid credentials", func() {
			c, err := vmware.Login(ctx, srv.URL.Host, "administrator@vsphere.local", "s3cret")

			Expect(err).NotTo(HaveOccurred())
			Expect(c.Logout(ctx)).To(Succeed())
		})

		It("should report invalid credentials", func() {
			_, err := vmware.Login(ctx, srv.URL.Host, "administrator@vsphere.local", "wrong")

			Expect(err).To(HaveOccurred())
			Expect(vmware.IsInvalidLogin(err)).To(BeTrue())
		})
	})

	Describe("WaitForLogin", func() {
		// Given wrong credentials
		// When we wait for a login
		// Then the rejection is permanent and returned without retrying until the deadline
		It("should not retry rejected credentials", func() {
			start := time.Now()

			_, err := vmware.WaitForLogin(ctx, srv.URL.Host, "administrator@vsphere.local", "wrong", time.Minute)

			Expect(err).To(HaveOccurred())
			Expect(vmware.IsInvalidLogin(err)).To(BeTrue())
			Expect(time.Since(start)).To(BeNumerically("<", 10*time.Second))
		})

		It("should give up on an unreachable host after the max elapsed time", func() {
			_, err := vmware.WaitForLogin(ctx, "127.0.0.1:1", "administrator@vsphere.local", "s3cret", 2*time.Second)

			Expect(err).To(HaveOccurred())
			Expect(vmware.IsInvalidLogin(err)).To(BeFalse())
		})
	})

	Describe("Preflight", func() {
		It("should report the target", func() {
			report, err := vmware.Preflight(ctx, srv.URL.Host, "administrator@vsphere.local", "s3cret", 10*time.Second)

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Host).To(Equal(srv.URL.Host))
			Expect(report.Thumbprint).To(Equal(soap.ThumbprintSHA1(srv.Certificate())))
			Expect(report.APIVersion).NotTo(BeEmpty())
		})
	})

	Describe("IsRegistered", func() {
		// Given an extension registered on the vCenter
		// When we look up its key and an unknown key
		// Then only the registered key is reported
		It("should report registered extension keys", func() {
			c, err := vmware.Login(ctx, srv.URL.Host, "administrator@vsphere.local", "s3cret")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() { _ = c.Logout(ctx) })

			em, err := object.GetExtensionManager(c.Client)
			Expect(err).NotTo(HaveOccurred())
			Expect(em.Register(ctx, types.Extension{
				Key:         "com.example.vcenter-plugin",
				Version:     "1.0.0",
				Description: &types.Description{Label: "plugin", Summary: "plugin"},
			})).To(Succeed())

			registered, err := vmware.IsRegistered(ctx, c.Client, "com.example.vcenter-plugin")
			Expect(err).NotTo(HaveOccurred())
			Expect(registered).To(BeTrue())

			registered, err = vmware.IsRegistered(ctx, c.Client, "com.example.other")
			Expect(err).NotTo(HaveOccurred())
			Expect(registered).To(BeFalse())
		})
	})
})
