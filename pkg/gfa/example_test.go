package gfa_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/gfak/pkg/gfa"
)

func ExampleParse() {
	text := "H\tVN:Z:1.0\n" +
		"S\tB\tTTTT\n" +
		"L\tA\t+\tB\t+\t4M\n" +
		"S\tA\tACGT\n"

	g, diags, err := gfa.Parse(strings.NewReader(text))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("diagnostics:", len(diags))
	fmt.Print(g)
	// Output:
	// diagnostics: 0
	// H	VN:Z:1.0
	// S	A	ACGT
	// L	A	+	B	+	4M
	// S	B	TTTT
}

func ExampleGraph_GFA2ize() {
	g, _, _ := gfa.Parse(strings.NewReader("S\t1\tACGT\nS\t2\tGG\nL\t1\t+\t2\t-\t2M\n"))
	g.GFA2ize()
	_ = gfa.Write(os.Stdout, g, gfa.WriteOptions{Order: gfa.BlockOrder})
	// Output:
	// S	1	4	ACGT
	// S	2	2	GG
	// E	*	1+	2-	0	4$	0	2$	2M
}

func ExampleSortNames() {
	names := []string{"s10", "b", "s2", "a10", "s1", "a2"}
	gfa.SortNames(names)
	fmt.Println(names)
	// Output: [a2 a10 b s1 s2 s10]
}
