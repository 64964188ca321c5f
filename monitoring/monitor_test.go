package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/sigmoid/accelerator"
	"github.com/sarchlab/sigmoid/fsm"
	"github.com/sarchlab/sigmoid/sim"
)

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		engine  *sim.SerialEngine
		comp    *accelerator.Comp
		handler http.Handler
	)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		handler.ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		comp = accelerator.MakeBuilder().
			WithEngine(engine).
			Build("Accelerator")

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterComponent(comp)
		handler = m.Handler()
	})

	It("should register the units of a component", func() {
		Expect(m.owners).To(HaveLen(1))
		Expect(m.snapshots()).To(HaveLen(4))
	})

	It("should list components", func() {
		rec := get("/api/list_components")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(`["Accelerator"]`))
	})

	It("should report the current time", func() {
		rec := get("/api/now")

		Expect(rec.Body.String()).To(Equal(`{"now":0.0000000000}`))
	})

	It("should return 404 for unknown components", func() {
		rec := get("/api/component/Unknown")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should serialize a component", func() {
		rec := get("/api/component/Accelerator")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).ToNot(BeEmpty())
	})

	It("should report unit snapshots", func() {
		comp.Submit(2)
		Expect(engine.Run()).To(Succeed())

		rec := get("/api/unit/Accelerator.Sigmoid")
		Expect(rec.Code).To(Equal(http.StatusOK))

		snapshot := fsm.Snapshot{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &snapshot)).To(Succeed())
		Expect(snapshot.Name).To(Equal("Accelerator.Sigmoid"))
		Expect(snapshot.Output).To(Equal(uint32(57343)))
		Expect(snapshot.End).To(BeTrue())
	})

	It("should list all unit snapshots", func() {
		u := fsm.NewPowerUnit("Standalone")
		m.RegisterUnit(u)

		rec := get("/api/units")

		snapshots := []fsm.Snapshot{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &snapshots)).To(Succeed())
		Expect(snapshots).To(HaveLen(5))
		Expect(snapshots[4].Name).To(Equal("Standalone"))
	})

	It("should report unit snapshots while the engine runs", func() {
		for i := 0; i < 50; i++ {
			comp.Submit(uint32(i % 9))
		}

		done := make(chan error, 1)
		go func() {
			done <- engine.Run()
		}()

		polls := 0
		for running := true; running; polls++ {
			select {
			case err := <-done:
				Expect(err).ToNot(HaveOccurred())
				running = false
			default:
			}

			rec := get("/api/units")
			Expect(rec.Code).To(Equal(http.StatusOK))

			snapshots := []fsm.Snapshot{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &snapshots)).To(Succeed())
			Expect(snapshots).To(HaveLen(4))
		}

		Expect(polls).To(BeNumerically(">", 0))
		Expect(comp.Results()).To(HaveLen(50))
	})

	It("should return 404 for unknown units", func() {
		rec := get("/api/unit/Unknown")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should tick a ticking component", func() {
		rec := get("/api/tick/Accelerator")

		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should reject malformed field requests", func() {
		rec := get("/api/field/notjson")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Requests", 3)
		bar.IncrementInProgress(1)

		rec := get("/api/progress")

		bars := []map[string]any{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["name"]).To(Equal("Requests"))
		Expect(bars[0]["in_progress"]).To(BeNumerically("==", 1))

		m.CompleteProgressBar(bar)
		rec = get("/api/progress")
		Expect(rec.Body.String()).To(Equal("[]"))
	})

	It("should report resource usage", func() {
		rec := get("/api/resource")

		rsp := resourceRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve the page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Sigmoid Monitor"))
	})

	It("should ignore privileged ports", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})
})

var _ = Describe("ProgressBar", func() {
	It("should move items to finished", func() {
		bar := &ProgressBar{Total: 4}

		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2)
		bar.IncrementFinished(1)

		Expect(bar.InProgress).To(Equal(uint64(1)))
		Expect(bar.Finished).To(Equal(uint64(3)))
	})
})
