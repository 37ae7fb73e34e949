package idgen

import (
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	initOnce sync.Once
)

// Init menyiapkan node snowflake, aman dipanggil berkali-kali
func Init() {
	initOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
	})
}

func GenerateID() int64 {
	Init()
	return node.Generate().Int64()
}

// GenerateCode returns a short unique document code such as "BH1A2B3C4D5E".
func GenerateCode(prefix string) string {
	Init()
	return prefix + strings.ToUpper(node.Generate().Base36())
}
