package config

import (
	"strconv"
	"strings"
)

var Conf Input

func initSeqRange() {
	if Conf.Seq == "" {
		return
	}
	m := strings.Split(Conf.Seq, ":")
	if len(m) == 1 {
		Conf.SeqStart, _ = strconv.Atoi(m[0])
		Conf.SeqEnd = Conf.SeqStart
	} else {
		Conf.SeqStart, _ = strconv.Atoi(m[0])
		Conf.SeqEnd, _ = strconv.Atoi(m[1])
	}
}

// PageRange reports whether a zero-based page index falls inside the
// configured sequence range. A negative end counts back from the last
// page.
func PageRange(index, size int) bool {
	if Conf.SeqStart <= 0 {
		return true
	}
	if Conf.SeqEnd < 0 && (index-size >= Conf.SeqEnd) {
		return false
	}
	if Conf.SeqEnd > 0 {
		if index >= Conf.SeqEnd {
			return false
		}
		if index+1 >= Conf.SeqStart {
			return true
		}
	} else if index+1 >= Conf.SeqStart {
		return true
	}
	return false
}
