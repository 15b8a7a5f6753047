package query_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/portsight/vendor-intel/internal/connection"
	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/query"
	"github.com/portsight/vendor-intel/internal/store"
	srvErrors "github.com/portsight/vendor-intel/pkg/errors"
)

type memoryConnector struct{}

func (memoryConnector) Connect(ctx context.Context) (*sql.DB, error) {
	return store.NewDB(":memory:")
}

type noopLifecycle struct{}

func (noopLifecycle) EnsureRunning(ctx context.Context) error { return nil }

// The ragged driver reports two columns up front but sizes scan rows off a
// second metadata call that returns one, making row scans fail the way a
// misbehaving driver does.
type raggedDriver struct{}

func (raggedDriver) Open(name string) (driver.Conn, error) { return raggedConn{}, nil }

type raggedConn struct{}

func (raggedConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}

func (raggedConn) Close() error { return nil }

func (raggedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("not implemented")
}

func (raggedConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return &raggedRows{}, nil
}

type raggedRows struct {
	columnCalls int
	rowsServed  int
}

func (r *raggedRows) Columns() []string {
	r.columnCalls++
	if r.columnCalls == 1 {
		return []string{"vendor", "total"}
	}
	return []string{"vendor"}
}

func (r *raggedRows) Close() error { return nil }

func (r *raggedRows) Next(dest []driver.Value) error {
	if r.rowsServed > 0 {
		return io.EOF
	}
	r.rowsServed++
	dest[0] = "acme"
	return nil
}

func init() {
	sql.Register("ragged", raggedDriver{})
}

type raggedConnector struct{}

func (raggedConnector) Connect(ctx context.Context) (*sql.DB, error) {
	return sql.Open("ragged", "")
}

// capturingRecorder keeps every history record in memory.
type capturingRecorder struct {
	mu      sync.Mutex
	records []models.QueryRecord
}

func (r *capturingRecorder) Record(ctx context.Context, rec models.QueryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *capturingRecorder) all() []models.QueryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.QueryRecord(nil), r.records...)
}

var _ = Describe("Executor", func() {
	var (
		ctx      context.Context
		manager  *connection.Manager
		recorder *capturingRecorder
		exec     *query.Executor
	)

	BeforeEach(func() {
		ctx = context.Background()
		manager = connection.NewManager(memoryConnector{}, noopLifecycle{})
		recorder = &capturingRecorder{}
		exec = query.NewExecutor(manager, recorder)

		session, err := manager.Acquire(ctx)
		Expect(err).NotTo(HaveOccurred())

		_, err = session.DB().ExecContext(ctx, `
			CREATE TABLE orders (vendor VARCHAR, total INTEGER);
			INSERT INTO orders VALUES ('acme', 12), ('bolt', 7);
		`)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Query", func() {
		// Given a result set matching the expected arity
		// When the statement runs
		// Then native rows should come back with []byte cells as strings
		It("should return native rows on matching arity", func() {
			rows, err := exec.Query(ctx, query.Statement{
				SQL:     "SELECT vendor, total FROM orders ORDER BY total DESC",
				Columns: 2,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0][0]).To(Equal("acme"))
			Expect(rows[1][0]).To(Equal("bolt"))
		})

		// Given a single string cell holding a tuple-text rendering
		// When the statement expects more than one column
		// Then the text should be decoded into rows
		It("should decode a tuple-text cell", func() {
			rows, err := exec.Query(ctx, query.Statement{
				SQL:     `SELECT '[(''acme'', 12), (''bolt'', 7)]'`,
				Columns: 2,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal([]models.Row{
				{"acme", int64(12)},
				{"bolt", int64(7)},
			}))
		})

		// Given a result whose arity matches neither the expectation nor
		// the tuple-text shape
		// When the statement runs
		// Then it should fail loudly instead of coercing
		It("should fail with MalformedResultError on arity mismatch", func() {
			_, err := exec.Query(ctx, query.Statement{
				SQL:     "SELECT vendor, total FROM orders",
				Columns: 3,
			})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsMalformedResultError(err)).To(BeTrue())
		})

		It("should fail with MalformedResultError on malformed tuple text", func() {
			_, err := exec.Query(ctx, query.Statement{
				SQL:     `SELECT 'this is not tuple text'`,
				Columns: 2,
			})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsMalformedResultError(err)).To(BeTrue())
		})

		// Given a driver whose column metadata is inconsistent between calls
		// When a row fails to scan
		// Then the failure should surface as TransientQueryError, never as
		// a fabricated arity mismatch
		It("should wrap scan failures as TransientQueryError", func() {
			raggedManager := connection.NewManager(raggedConnector{}, noopLifecycle{})
			raggedExec := query.NewExecutor(raggedManager, recorder)

			_, err := raggedExec.Query(ctx, query.Statement{
				SQL:     "SELECT vendor, total FROM orders",
				Columns: 2,
			})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsTransientQueryError(err)).To(BeTrue())
			Expect(srvErrors.IsMalformedResultError(err)).To(BeFalse())
		})

		// Given a statement the engine rejects
		// When the statement runs
		// Then it should surface as TransientQueryError
		It("should wrap engine failures as TransientQueryError", func() {
			_, err := exec.Query(ctx, query.Statement{
				SQL:     "SELECT * FROM no_such_table",
				Columns: 1,
			})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsTransientQueryError(err)).To(BeTrue())
		})
	})

	Describe("History recording", func() {
		// Given a successful query
		// When it completes
		// Then an ok record with the row count should be captured
		It("should record successful queries", func() {
			_, err := exec.Query(ctx, query.Statement{
				SQL:     "SELECT vendor, total FROM orders",
				Columns: 2,
			})
			Expect(err).NotTo(HaveOccurred())

			records := recorder.all()
			Expect(records).To(HaveLen(1))
			Expect(records[0].Outcome).To(Equal(models.QueryOutcomeOK))
			Expect(records[0].RowCount).To(Equal(2))
			Expect(records[0].ID).NotTo(BeEmpty())
		})

		// Given a failing query
		// When it completes
		// Then an error record carrying the failure should be captured
		It("should record failed queries with the error", func() {
			_, err := exec.Query(ctx, query.Statement{
				SQL:     "SELECT * FROM no_such_table",
				Columns: 1,
			})
			Expect(err).To(HaveOccurred())

			records := recorder.all()
			Expect(records).To(HaveLen(1))
			Expect(records[0].Outcome).To(Equal(models.QueryOutcomeError))
			Expect(records[0].Error).NotTo(BeEmpty())
		})
	})
})
