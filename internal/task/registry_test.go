package task

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySetReplacesWholesale(t *testing.T) {
	r := NewRegistry(16, time.Minute)
	r.Set("parse_1", Status{Progress: 10, State: StateProcessing, Message: "文件已上传，开始解析..."})
	r.Set("parse_1", Status{Progress: 100, State: StateSuccess, Message: "解析完成"})

	got, ok := r.Get("parse_1")
	require.True(t, ok)
	assert.Equal(t, Status{Progress: 100, State: StateSuccess, Message: "解析完成"}, got)
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry(16, time.Minute)
	_, ok := r.Get("parse_missing")
	assert.False(t, ok)
	_, ok = r.Result("parse_missing")
	assert.False(t, ok)
}

func TestRegistryResultSeparateFromStatus(t *testing.T) {
	r := NewRegistry(16, time.Minute)
	r.Set("gen_1", Status{Progress: 0, State: StateError, Message: "生成失败: boom"})

	// A failed task has a status but never a result.
	_, ok := r.Result("gen_1")
	assert.False(t, ok)

	r.SetResult("gen_2", "<h1>标书</h1>")
	content, ok := r.Result("gen_2")
	require.True(t, ok)
	assert.Equal(t, "<h1>标书</h1>", content)
}

func TestRegistryCapacityBound(t *testing.T) {
	r := NewRegistry(2, time.Minute)
	r.Set("a", Status{Progress: 10})
	r.Set("b", Status{Progress: 10})
	r.Set("c", Status{Progress: 10})

	_, ok := r.Get("a")
	assert.False(t, ok, "oldest entry should be evicted at capacity")
	_, ok = r.Get("c")
	assert.True(t, ok)
}

func TestRegistryTTLExpiry(t *testing.T) {
	r := NewRegistry(16, 20*time.Millisecond)
	r.Set("a", Status{Progress: 10})
	r.SetResult("a", "content")

	time.Sleep(60 * time.Millisecond)

	_, ok := r.Get("a")
	assert.False(t, ok)
	_, ok = r.Result("a")
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry(1024, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("parse_%d", n)
			for p := 0; p <= 100; p += 10 {
				r.Set(id, Status{Progress: p, State: StateProcessing})
				r.Get(id)
			}
		}(i)
	}
	wg.Wait()
}

func TestNewParseID(t *testing.T) {
	a := NewParseID()
	b := NewParseID()
	assert.True(t, strings.HasPrefix(a, "parse_"))
	assert.NotEqual(t, a, b)
}
