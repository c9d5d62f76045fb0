package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// pcap2flow converts a pcap capture into version-2 flow-log lines so that
// captured traffic can be fed straight to flow-tagger.
func main() {
	inputFile := flag.String("i", "", "Input pcap file path")
	outputFile := flag.String("o", "flow.log", "Output flow log path")
	accountID := flag.String("account", "123456789012", "account-id field value")
	eniID := flag.String("eni", "eni-0a1b2c3d", "interface-id field value")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Usage: pcap2flow -i <capture.pcap> [-o <flow.log>] [-account id] [-eni id]")
		os.Exit(1)
	}

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("Failed to open pcap file: %v", err)
	}
	defer f.Close()

	pcapReader, err := pcapgo.NewReader(f)
	if err != nil {
		log.Fatalf("Failed to read pcap header: %v", err)
	}

	out, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	converted, skipped := 0, 0
	for {
		data, ci, err := pcapReader.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read packet: %v", err)
		}

		line, err := flowLine(data, ci, *accountID, *eniID)
		if err != nil {
			skipped++
			continue
		}
		fmt.Fprintln(w, line)
		converted++
	}

	if err := w.Flush(); err != nil {
		log.Fatalf("Failed to write flow log: %v", err)
	}
	log.Printf("Converted %d packets (%d skipped) into %s.", converted, skipped, *outputFile)
}

// flowLine renders one packet as a version-2 flow-log record. Non-IPv4
// packets and transports without a port concept (other than ICMP) are
// rejected.
func flowLine(data []byte, ci gopacket.CaptureInfo, account, eni string) (string, error) {
	packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	l := packet.Layer(layers.LayerTypeIPv4)
	if l == nil {
		return "", fmt.Errorf("not an IPv4 packet")
	}
	ip := l.(*layers.IPv4)

	var srcPort, dstPort int
	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		srcPort, dstPort = int(tcp.SrcPort), int(tcp.DstPort)
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		srcPort, dstPort = int(udp.SrcPort), int(udp.DstPort)
	} else if ip.Protocol != layers.IPProtocolICMPv4 {
		return "", fmt.Errorf("unsupported transport protocol %d", ip.Protocol)
	}

	ts := ci.Timestamp.Unix()
	return fmt.Sprintf("2 %s %s %s %s %d %d %d 1 %d %d %d ACCEPT OK",
		account, eni, ip.SrcIP, ip.DstIP, srcPort, dstPort, ip.Protocol,
		ci.Length, ts, ts), nil
}
