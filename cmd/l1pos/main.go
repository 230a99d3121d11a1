// Command l1pos runs the single-frequency GPS L1 positioning pipeline over
// a stream of tokenized RTCM-3 lines, read from a file or a serial port.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/adedolapo/gnssl1/pkg/pipeline"
)

func main() {
	filePath := flag.String("file", "", "path to a file of tokenized RTCM lines")
	serialPort := flag.String("serial", "", "serial port device to read tokenized RTCM lines from")
	baudRate := flag.Int("baud", 115200, "serial port baud rate (only with -serial)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	source, closeSource, err := openSource(*filePath, *serialPort, *baudRate)
	if err != nil {
		logger.Fatalf("failed to open input: %v", err)
	}
	defer closeSource()

	driver := pipeline.NewDriver(logger)
	summary, err := driver.Run(source)
	if err != nil {
		logger.Fatalf("pipeline run failed: %v", err)
	}

	logger.WithField("run_id", summary.RunID).Infof(
		"solved %d epochs, tracked %d PRNs, skipped %d lines, dropped %d records",
		len(summary.Results), len(summary.SatECEF), summary.SkippedLines, summary.DroppedCapacity,
	)
}

// openSource picks the input reader by flag, per spec §6's framing of the
// reader as an external collaborator: -file takes precedence over
// -serial, and with neither set the lines are read from stdin.
func openSource(filePath, serialPort string, baud int) (io.Reader, func(), error) {
	noop := func() {}

	switch {
	case filePath != "":
		f, err := os.Open(filePath)
		if err != nil {
			return nil, noop, err
		}
		return f, func() { f.Close() }, nil

	case serialPort != "":
		mode := &serial.Mode{BaudRate: baud}
		port, err := serial.Open(serialPort, mode)
		if err != nil {
			return nil, noop, err
		}
		return port, func() { port.Close() }, nil

	default:
		return os.Stdin, noop, nil
	}
}
