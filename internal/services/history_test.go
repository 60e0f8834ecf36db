package services_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
	"github.com/kubev2v/installer-driver/internal/store"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

var _ = Describe("HistoryService", func() {
	var (
		ctx     context.Context
		db      *sql.DB
		st      *store.Store
		history *services.HistoryService
		started time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		started = time.Now().Add(-time.Hour).UTC().Truncate(time.Second)

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		st = store.NewStore(db)
		Expect(st.Migrate(ctx)).To(Succeed())
		history = services.NewHistoryService(st)

		for i, outcome := range []models.Outcome{models.OutcomeSuccess, models.OutcomeExpectedFailure, models.OutcomeUnexpectedError} {
			Expect(st.Runs().Save(ctx, &models.Run{
				Operation:  models.OperationInstall,
				Host:       "10.0.0.1",
				Username:   "admin",
				Trust:      true,
				Outcome:    outcome,
				LogPath:    "install.log",
				StartedAt:  started.Add(time.Duration(i) * time.Minute),
				FinishedAt: started.Add(time.Duration(i)*time.Minute + 1500*time.Millisecond),
			})).To(Succeed())
		}
	})

	AfterEach(func() {
		db.Close()
	})

	It("should list with the total ignoring pagination", func() {
		runs, total, err := history.List(ctx, services.HistoryFilter{Limit: 1})

		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))
		Expect(total).To(Equal(3))
		Expect(runs[0].Outcome).To(Equal(models.OutcomeUnexpectedError))
	})

	It("should filter by outcome", func() {
		runs, total, err := history.List(ctx, services.HistoryFilter{Outcomes: []models.Outcome{models.OutcomeSuccess}})

		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))
		Expect(total).To(Equal(1))
	})

	It("should return ResourceNotFoundError for an unknown run", func() {
		_, err := history.Get(ctx, uuid.New())

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should prune old runs", func() {
		n, err := history.Prune(ctx, 30*time.Minute)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
	})

	// Given recorded runs
	// When we export them
	// Then the workbook has a header row and one row per run
	It("should export runs to xlsx", func() {
		dir, err := os.MkdirTemp("", "history-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
		path := filepath.Join(dir, "runs.xlsx")

		n, err := history.Export(ctx, services.HistoryFilter{}, path)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))

		f, err := excelize.OpenFile(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		rows, err := f.GetRows("Runs")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(4))
		Expect(rows[0][0]).To(Equal("ID"))
		Expect(rows[0][7]).To(Equal("Outcome"))
		Expect(rows[1][7]).To(Equal("unexpected-error"))
		Expect(rows[3][7]).To(Equal("success"))
		Expect(rows[3][8]).To(Equal("TRUE"))
		Expect(rows[3][11]).To(Equal("1.5"))
	})
})
