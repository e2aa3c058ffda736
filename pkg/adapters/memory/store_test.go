package memory_test

import (
	"testing"

	"github.com/aretw0/bigpicture/pkg/adapters/memory"
	"github.com/aretw0/bigpicture/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.New()
	ports.RunWorkshopStoreContract(t, store)
}
