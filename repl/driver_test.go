package repl

import (
	"strings"
	"testing"

	"damasc/parser"
)

func mustExec(t *testing.T, d *Driver, src string) Output {
	t.Helper()
	stmt, err := parser.ParseStatement(src)
	if err != nil {
		t.Fatalf("ParseStatement(%q) error = %v", src, err)
	}
	out, err := d.Execute(stmt)
	if err != nil {
		t.Fatalf("Execute(%q) error = %v", src, err)
	}
	return out
}

func TestDriverInsertAndQueryRoundTrip(t *testing.T) {
	d := New()
	out := mustExec(t, d, ".insert {name: \"ann\", age: 30}")
	if out.Kind != OutputInserted || out.Count != 1 {
		t.Fatalf("insert = %+v", out)
	}

	out = mustExec(t, d, ".query {name, age} where age > 18")
	if out.Kind != OutputValues || len(out.Values) != 1 {
		t.Fatalf("query = %+v", out)
	}
}

func TestDriverInsertArrayStopsAtFirstRejection(t *testing.T) {
	d := New()
	mustExec(t, d, `.bag b as x is Integer where x > 0`)
	out := mustExec(t, d, `.insert [1, 2, -3, 4]`)
	if out.Kind != OutputInserted || out.Count != 2 {
		t.Fatalf("insert array = %+v, want Inserted 2", out)
	}
	items, err := d.Bags.Read("b")
	if err != nil {
		t.Fatalf("Read error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("bag has %d items, want 2 (4 must not have been inserted)", len(items))
	}
}

func TestDriverInsertRejectedByGuardReportsNo(t *testing.T) {
	d := New()
	mustExec(t, d, `.bag nums as x is Integer where x > 0`)
	out := mustExec(t, d, `.insert "not a number"`)
	if out.Kind != OutputNo {
		t.Fatalf("insert = %+v, want No", out)
	}
}

func TestDriverUseBagCreateSwitchAlreadyExists(t *testing.T) {
	d := New()
	out := mustExec(t, d, ".bag people")
	if out.Kind != OutputNotice || out.Notice != "BAG CREATED" {
		t.Fatalf("first .bag = %+v", out)
	}
	out = mustExec(t, d, ".bag "+DefaultBagName)
	if out.Notice != "SWITCHED BAG" {
		t.Fatalf("switch back = %+v", out)
	}
	out = mustExec(t, d, ".bag people as x is Object where true")
	if out.Notice != "ALREADY EXISTS, SWITCHED BAG" {
		t.Fatalf("recreate = %+v", out)
	}
}

func TestDriverBareBagReportsTellBag(t *testing.T) {
	d := New()
	mustExec(t, d, `.insert 1`)
	out := mustExec(t, d, ".bag")
	if out.Kind != OutputNotice || !strings.Contains(out.Notice, "Current Bag: "+DefaultBagName) {
		t.Fatalf("tellbag = %+v", out)
	}
}

func TestDriverLetCommitsBindingsMatchSetDoesNot(t *testing.T) {
	d := New()
	out := mustExec(t, d, "let a = 1, b = a + 1")
	if out.Kind != OutputBindings || len(out.Bindings) != 2 {
		t.Fatalf("let = %+v", out)
	}
	if _, ok := d.Env.Lookup("a"); !ok {
		t.Fatalf("let should commit a")
	}

	out = mustExec(t, d, "c = 99")
	if out.Kind != OutputBindings {
		t.Fatalf("match = %+v", out)
	}
	if _, ok := d.Env.Lookup("c"); ok {
		t.Fatalf("bare match should not commit c")
	}
}

func TestDriverMatchSetFailureReportsNo(t *testing.T) {
	d := New()
	out := mustExec(t, d, `{a: 1} = {a: 2}`)
	if out.Kind != OutputNo {
		t.Fatalf("mismatched pattern = %+v, want No", out)
	}
}

func TestDriverDeletionAndPop(t *testing.T) {
	d := New()
	mustExec(t, d, ".insert 1")
	mustExec(t, d, ".insert 2")
	out := mustExec(t, d, ".delete x where x > 1")
	if out.Kind != OutputDeleted || out.Count != 1 {
		t.Fatalf("delete = %+v", out)
	}
	out = mustExec(t, d, ".pop 1")
	if out.Kind != OutputAck {
		t.Fatalf("pop = %+v, want Ack", out)
	}
	out = mustExec(t, d, ".pop 1")
	if out.Kind != OutputNo {
		t.Fatalf("pop again = %+v, want No", out)
	}
}

func TestDriverExitReturnsErrExit(t *testing.T) {
	d := New()
	stmt, err := parser.ParseStatement(".exit")
	if err != nil {
		t.Fatalf("ParseStatement error = %v", err)
	}
	if _, err := d.Execute(stmt); err != ErrExit {
		t.Fatalf("Execute(.exit) error = %v, want ErrExit", err)
	}
}

func TestDriverLiteralRoundTripsPrintedForm(t *testing.T) {
	d := New()
	out := mustExec(t, d, ".literal 1 + 2")
	if out.Kind != OutputNotice || out.Notice != "3" {
		t.Fatalf("literal = %+v", out)
	}
}

func TestOutputStringFormats(t *testing.T) {
	d := New()
	out := mustExec(t, d, ".clear")
	if out.String() != "OK." {
		t.Fatalf("clear string = %q", out.String())
	}
	out = mustExec(t, d, "let a = 1")
	if out.String() != "YES.\na := 1;" {
		t.Fatalf("let string = %q", out.String())
	}
}
