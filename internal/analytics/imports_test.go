package analytics

import (
	"testing"

	"emissiondesk/testutil"
)

func TestAggregationsOnlyDependOnDomain(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.ThirdPartyImport("emissiondesk/pkg/domain"), "aggregations stay pure")
}
