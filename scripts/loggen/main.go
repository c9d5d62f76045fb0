package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

// loggen generates a synthetic version-2 flow log for testing flow-tagger.
func main() {
	outputFile := flag.String("o", "flow.log", "Output flow log path")
	lineCount := flag.Int("c", 1000, "Number of log lines to generate")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	// A small population of ports/protocols so that generated logs exercise
	// both tagged and untagged paths when paired with a typical lookup table.
	ports := []int{22, 23, 25, 80, 110, 143, 443, 993, 3389, 8080}
	protocols := []int{6, 6, 6, 17, 1, 47}
	actions := []string{"ACCEPT", "REJECT"}

	log.Printf("Generating %d lines into %s (seed %d)...", *lineCount, *outputFile, *seed)

	for i := 0; i < *lineCount; i++ {
		if (i+1)%100000 == 0 {
			log.Printf("Generated %d lines...", i+1)
		}

		srcIP := fmt.Sprintf("10.0.%d.%d", rng.Intn(256), rng.Intn(256))
		dstIP := fmt.Sprintf("198.51.%d.%d", rng.Intn(256), rng.Intn(256))
		srcPort := rng.Intn(65535-1024) + 1024
		dstPort := ports[rng.Intn(len(ports))]
		proto := protocols[rng.Intn(len(protocols))]
		packets := rng.Intn(100) + 1
		bytes := packets * (rng.Intn(1400) + 50)
		start := time.Now().Unix() - int64(rng.Intn(3600))
		end := start + int64(rng.Intn(300))
		action := actions[rng.Intn(len(actions))]

		fmt.Fprintf(w, "2 123456789012 eni-0a1b2c3d %s %s %d %d %d %d %d %d %d %s OK\n",
			srcIP, dstIP, srcPort, dstPort, proto, packets, bytes, start, end, action)
	}

	if err := w.Flush(); err != nil {
		log.Fatalf("Failed to write flow log: %v", err)
	}
	log.Printf("Successfully generated %d lines into %s.", *lineCount, *outputFile)
}
