package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/store"
	"github.com/xor-shift/rngeasy/util"
)

func writeVectors(w io.Writer, format string, outputs []uint32) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(outputs)
	}

	csvWriter := csv.NewWriter(w)
	_ = csvWriter.Write([]string{"Index", "Output", "Hex"})
	for i, v := range outputs {
		_ = csvWriter.Write([]string{
			strconv.Itoa(i),
			strconv.FormatUint(uint64(v), 10),
			fmt.Sprintf("%08x", v),
		})
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// formatWords renders result words the way the operation returned them.
func formatWords(op common.Operation, words []uint32) string {
	parts := make([]string, len(words))

	for i, w := range words {
		switch op {
		case common.OpAdvance, common.OpU32To, common.OpU32In, common.OpDice,
			common.OpDiceNoRepeat, common.OpShuffle:
			parts[i] = strconv.FormatUint(uint64(w), 10)
		case common.OpS32In:
			parts[i] = strconv.FormatInt(int64(int32(w)), 10)
		case common.OpOneIn:
			parts[i] = strconv.FormatBool(w != 0)
		default:
			parts[i] = strconv.FormatFloat(float64(math.Float32frombits(w)), 'g', -1, 32)
		}
	}

	return strings.Join(parts, " ")
}

func outFileName(pattern string, session uint64) (string, error) {
	outFileNameTemplate, err := template.New("").Parse(pattern)
	if err != nil {
		return "", errors.Wrap(err, "creating the output filename template")
	}

	templateArguments := struct {
		SessionNo uint64
	}{
		SessionNo: session,
	}

	var buf bytes.Buffer
	if err = outFileNameTemplate.Execute(&buf, templateArguments); err != nil {
		return "", errors.Wrap(err, "executing the output filename template")
	}

	return buf.String(), nil
}

func writeVerdicts(w io.Writer, format string, rows []store.Row, columnTitles bool) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(rows)
	}

	csvWriter := csv.NewWriter(w)

	if columnTitles {
		_ = csvWriter.Write([]string{
			"Sequence",
			"Operation",
			"OK",
			"Expected",
			"Got",
			"Reason",
			"Insert Time",
		})
	}

	for _, row := range rows {
		_ = csvWriter.Write([]string{
			strconv.FormatUint(row.Sequence, 10),
			row.Op,
			strconv.FormatBool(row.OK),
			util.ArrayToString(row.Expected),
			util.ArrayToString(row.Got),
			row.Reason,
			strconv.FormatInt(row.InsertTime.Unix(), 10),
		})
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
