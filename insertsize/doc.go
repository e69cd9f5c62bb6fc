// Copyright 2019 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*Package insertsize estimates the insert-size distribution of a paired-end
  library from a single pass over a name-sorted alignment stream.

  The estimator pairs adjacent R1/R2 records sharing a read name, applies a
  conservative acceptance filter (high MAPQ, proper FR pairs, no clipping),
  and accumulates template lengths up to a configured sample size.  The
  resulting mean and standard deviation parameterize the realignment stage of
  the eccDNA pipeline.
*/
package insertsize
