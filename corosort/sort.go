package corosort

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	liberr "github.com/sabouaram/sysprog/errors"
	errpool "github.com/sabouaram/sysprog/errors/pool"
	"github.com/sabouaram/sysprog/ioutils/multi"
	"github.com/sirupsen/logrus"
)

// fileJob pairs one input file with the run file its sorted contents
// are spilled to.
type fileJob struct {
	in  string
	out string
}

// Run performs the coursework's external sort: every input file is
// parsed into a SortedRun by a coroutine and spilled to its own run file
// under a fresh "coro-sort-XXXXXX" temp directory, then a single
// min-heap merge streams all the runs into outPath as space-separated
// decimal ASCII.
//
// coroCount worker coroutines share the files round-robin; when
// coroCount is below len(files) a coroutine processes its assigned
// files one after another, still yielding at every parsed integer and
// every spilled write.
func Run(files []string, coroCount int, quantum time.Duration, outPath string, log *logrus.Entry) liberr.Error {
	if len(files) == 0 {
		return ErrInvalidArgument.Error(nil)
	}
	if coroCount < 1 {
		coroCount = len(files)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "corosort")

	dir, e := os.MkdirTemp(os.TempDir(), "coro-sort-")
	if e != nil {
		log.WithField("err", e).Fatal("allocating run directory")
	}
	defer os.RemoveAll(dir)

	runPaths := make([]string, len(files))
	jobs := make([][]fileJob, coroCount)
	for i, f := range files {
		rp := filepath.Join(dir, fmt.Sprintf("run-%d.bin", i))
		runPaths[i] = rp
		w := i % coroCount
		jobs[w] = append(jobs[w], fileJob{in: f, out: rp})
	}

	sched := New(quantum, log)
	for _, js := range jobs {
		if len(js) == 0 {
			continue
		}
		assigned := js
		sched.Add(func(y Yielder, _ any) any {
			return runJobs(y, assigned, log)
		}, nil)
	}

	failures := errpool.New()
	for {
		c := sched.Wait()
		if c == nil {
			break
		}
		if err, ok := c.Result().(liberr.Error); ok && err != nil {
			failures.Add(err)
		}
	}
	if failures.Len() > 0 {
		log.WithField("count", failures.Len()).Error("coroutine failures")
		return ErrCoroutineFailed.Error(failures.Error())
	}

	return mergeRuns(runPaths, outPath, log)
}

// runJobs is one coroutine's body: it streams every assigned file into
// a SortedRun and spills it, yielding at each parsed integer and each
// write, per the coursework's contract.
func runJobs(y Yielder, jobs []fileJob, log *logrus.Entry) liberr.Error {
	for _, j := range jobs {
		if err := spillOne(y, j, log); err != nil {
			return err
		}
	}
	return nil
}

func spillOne(y Yielder, j fileJob, log *logrus.Entry) liberr.Error {
	in, e := os.Open(j.in)
	if e != nil {
		return ErrOpenInput.Error(e)
	}

	fr := NewFileNumberReader(in)
	defer fr.Close()

	run := NewSortedRun()
	for {
		v, ok := fr.Next()
		if !ok {
			break
		}
		run.Insert(v)
		y.Yield()
	}

	out, e := os.Create(j.out)
	if e != nil {
		return ErrCreateTemp.Error(e)
	}
	defer out.Close()

	buf := make([]byte, 4)
	for i := 0; i < run.Len(); i++ {
		binary.BigEndian.PutUint32(buf, uint32(int32(run.At(i))))
		if _, e := out.Write(buf); e != nil {
			return ErrWriteTemp.Error(e)
		}
		y.Yield()
	}

	log.WithField("file", j.in).WithField("count", run.Len()).Debug("run spilled")
	return nil
}

// mergeRuns drives the single-threaded multi-way merge: one MergeHeap
// entry per still-active run, popped and re-filled until every run is
// drained, written as space-separated decimal ASCII through a
// page-sized output buffer.
func mergeRuns(runPaths []string, outPath string, log *logrus.Entry) liberr.Error {
	files := make([]*os.File, len(runPaths))
	readers := make([]*bufio.Reader, len(runPaths))

	for i, p := range runPaths {
		f, e := os.Open(p)
		if e != nil {
			return ErrOpenInput.Error(e)
		}
		files[i] = f
		readers[i] = bufio.NewReaderSize(f, pageSize)
	}
	defer func() {
		for _, f := range files {
			if f != nil {
				_ = f.Close()
			}
		}
	}()

	out, e := os.Create(outPath)
	if e != nil {
		return ErrCreateOutput.Error(e)
	}
	defer out.Close()

	bw := bufio.NewWriterSize(out, pageSize)
	mw := multi.New()
	mw.AddWriter(bw)

	nextOf := func(i int) (int64, bool) {
		var v int32
		if err := binary.Read(readers[i], binary.BigEndian, &v); err != nil {
			return 0, false
		}
		return int64(v), true
	}

	h := NewMergeHeap()
	for i := range readers {
		if v, ok := nextOf(i); ok {
			h.Push(v, i)
		}
	}

	for h.Len() > 0 {
		v, src, _ := h.Pop()
		if _, err := fmt.Fprintf(mw, "%d ", v); err != nil {
			return ErrCreateOutput.Error(err)
		}
		if nv, ok := nextOf(src); ok {
			h.Push(nv, src)
		}
	}

	if e := bw.Flush(); e != nil {
		return ErrCreateOutput.Error(e)
	}

	log.WithField("out", outPath).WithField("runs", len(runPaths)).Debug("merge complete")
	return nil
}
